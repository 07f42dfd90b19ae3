package store

import (
	"time"

	"gorm.io/datatypes"
)

// RhymeRecordRow is the persisted form of a rhyme.Record: the record's
// identity and tonal category, plus the characters it covers as a JSON
// array (there is no natural relational shape for a rune set worth a
// join table).
type RhymeRecordRow struct {
	ID        int64          `gorm:"primaryKey;autoIncrement"`
	Name      string         `gorm:"uniqueIndex:idx_rhyme_name_group"`
	GroupName *string        `gorm:"uniqueIndex:idx_rhyme_name_group"`
	Tone      int            `gorm:"not null"` // tone.BasicTone
	Chars     datatypes.JSON `gorm:"type:json;not null"`
	CreatedAt time.Time
}

func (RhymeRecordRow) TableName() string { return "rhyme_records" }

// TemplateRow is the persisted form of a cipai.Template. Names and Meter
// are stored as opaque JSON: the meter's shape (a slice of slices of
// tagged slots) has no natural flat relational schema and is never
// queried by sub-field, only loaded whole.
type TemplateRow struct {
	ID          int64          `gorm:"primaryKey;autoIncrement"`
	Names       datatypes.JSON `gorm:"type:json;not null"`
	Variant     *string
	Description *string
	Meter       datatypes.JSON `gorm:"type:json;not null"`
	CreatedAt   time.Time
}

func (TemplateRow) TableName() string { return "templates" }

// meterSlotJSON and meterLineJSON are the wire shape Meter is marshalled
// to and from; tone.MeterTone has no JSON tags of its own since the core
// packages carry no encoding concerns.
type meterSlotJSON struct {
	Type       int  `json:"type"`
	RhymeGroup *int `json:"rhyme_group,omitempty"`
}

type meterLineJSON = []meterSlotJSON
