package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// ImageBlob holds the binary payload exactly the way the existing collection
// stores it: an embedded document with data + declared content type. Records
// created as folder placeholders carry no blob at all.
type ImageBlob struct {
	Data        []byte `json:"-" bson:"data,omitempty"`
	ContentType string `json:"contentType,omitempty" bson:"contentType,omitempty"`
}

// Image is one stored capture. Field names in bson match the collection the
// mobile and web clients already write to.
type Image struct {
	ID          bson.ObjectID    `json:"id" bson:"_id,omitempty"`
	Name        string           `json:"name,omitempty" bson:"name,omitempty"`
	Folder      string           `json:"folder,omitempty" bson:"folder,omitempty"`
	Img         ImageBlob        `json:"img,omitempty" bson:"img,omitempty"`
	CreatedAt   time.Time        `json:"criado_em" bson:"createdAt,omitempty"`
	Description string           `json:"descricao,omitempty" bson:"descricao,omitempty"`
	PointOfView string           `json:"ponto_de_vista,omitempty" bson:"pontoDeVista,omitempty"`
	IfcArea     string           `json:"ifcAreaName,omitempty" bson:"ifcArea,omitempty"`
	Gps         *GpsData         `json:"gps,omitempty" bson:"gps,omitempty"`
	Orientation *OrientationData `json:"orientacao,omitempty" bson:"orientacao,omitempty"`
}

// HasPayload reports whether the record carries binary image data.
func (i *Image) HasPayload() bool {
	return len(i.Img.Data) > 0
}

// GpsData mirrors the capture payload sent by the Android client.
type GpsData struct {
	Latitude  *float64 `json:"latitude" bson:"latitude,omitempty"`
	Longitude *float64 `json:"longitude" bson:"longitude,omitempty"`
	Altitude  *float64 `json:"altitude_metros,omitempty" bson:"altitude_metros,omitempty"`
	Accuracy  *float64 `json:"precisao_metros,omitempty" bson:"precisao_metros,omitempty"`
	Status    string   `json:"status,omitempty" bson:"status,omitempty"`
}

// OrientationData is the device attitude at capture time, in degrees.
type OrientationData struct {
	Azimuth float64 `json:"azimute_graus" bson:"azimute_graus"`
	Pitch   float64 `json:"pitch_graus" bson:"pitch_graus"`
	Roll    float64 `json:"roll_graus" bson:"roll_graus"`
}

// CaptureRequest is the JSON body of POST /api/captures/upload. Field names
// must stay as the mobile client sends them.
type CaptureRequest struct {
	NomeObra     string           `json:"nomeObra"`
	PontoDeVista string           `json:"pontoDeVista"`
	Descricao    string           `json:"descricao"`
	CriadoEm     string           `json:"criado_em"`
	Gps          *GpsData         `json:"gps"`
	Orientacao   *OrientationData `json:"orientacao"`
	ImageBase64  string           `json:"imageBase64"`
	Folder       string           `json:"folder" validate:"required"`
	IfcAreaName  string           `json:"ifcAreaName"`
}

// FolderRequest is the body of POST /create-folder.
type FolderRequest struct {
	FolderName string `json:"folderName" validate:"required"`
}

// FolderInfo is one entry of GET /api/folders.
type FolderInfo struct {
	Name    string    `json:"name"`
	Date    time.Time `json:"date"`
	Preview string    `json:"preview"`
	Type    string    `json:"type"`
}

// FolderImage is one entry of GET /folder/:folderName. Base64 is a full
// data: URI so the dashboard can drop it straight into an <img> tag.
type FolderImage struct {
	ID          string `json:"id"`
	NomeDaObra  string `json:"nome_da_obra"`
	Descricao   string `json:"descricao"`
	CriadoEm    string `json:"criado_em"`
	ContentType string `json:"contentType"`
	Base64      string `json:"base64"`
}
