package models

import "time"

// Plant is owned by exactly one account and is the unit of sharing.
type Plant struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	OwnerID        uint      `json:"owner_id" gorm:"not null;index"`
	Name           string    `json:"plant_name" gorm:"size:120;not null"`
	Type           string    `json:"plant_type" gorm:"size:120;not null"`
	ChosenImageURL string    `json:"chosen_image_url"`
	CreatedAt      time.Time `json:"date_created"`
}

type GrowthEntry struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	PlantID    uint      `json:"plant_id" gorm:"not null;index"`
	OwnerID    uint      `json:"owner_id" gorm:"not null;index"`
	CmGrown    float64   `json:"cm_grown" gorm:"not null"`
	RecordedAt time.Time `json:"date_recorded"`
}

// Photo is stored in MongoDB when configured, otherwise in the relational
// store. ID is a hex ObjectID in Mongo and a UUID in SQL.
type Photo struct {
	ID         string    `json:"id" bson:"_id" gorm:"primaryKey;size:36"`
	OwnerID    uint      `json:"owner_id" bson:"owner_id" gorm:"not null;index"`
	PlantID    uint      `json:"plant_id" bson:"plant_id" gorm:"index"`
	ImageURL   string    `json:"image_url" bson:"image_url" gorm:"not null"`
	Caption    string    `json:"caption" bson:"caption"`
	UploadedAt time.Time `json:"datetime_uploaded" bson:"uploaded_at" gorm:"index"`
}

// ContentItem is a photo projected into a feed with its author attached.
type ContentItem struct {
	Photo
	Author AccountCompact `json:"author"`
}

// SharedContentRecord logs one share of a plant; repeated shares add rows.
type SharedContentRecord struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	ContentID  uint      `json:"content_id" gorm:"not null;index"`
	SharedBy   uint      `json:"shared_by" gorm:"not null;index"`
	SharedWith uint      `json:"shared_with" gorm:"not null;index"`
	CreatedAt  time.Time `json:"created_at"`
}

type CreatePlantRequest struct {
	Name           string `json:"plant_name" validate:"required,min=1,max=120"`
	Type           string `json:"plant_type" validate:"required,min=1,max=120"`
	ChosenImageURL string `json:"chosen_image_url" validate:"required"`
}

type CreateGrowthRequest struct {
	CmGrown float64 `json:"cm_grown" validate:"gte=0,lte=1000"`
}

type CreatePhotoRequest struct {
	PlantID  uint   `json:"plant_id" validate:"required"`
	ImageURL string `json:"image_url" validate:"required,url"`
	Caption  string `json:"caption" validate:"max=500"`
}

type ShareContentRequest struct {
	ContentID       uint `json:"content_id" validate:"required"`
	TargetAccountID uint `json:"target_account_id" validate:"required"`
}

// SessionSummary is everything the client needs to render a signed-in home.
type SessionSummary struct {
	Account     Account          `json:"account"`
	Settings    VisibilityPolicy `json:"settings"`
	Plants      []Plant          `json:"plants"`
	Photos      []Photo          `json:"photos"`
	Connections Connections      `json:"friends"`
}
