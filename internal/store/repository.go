package store

import (
	"encoding/json"
	"fmt"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/qiuyun/cipai-meter/internal/cipai"
	"github.com/qiuyun/cipai-meter/internal/logger"
	"github.com/qiuyun/cipai-meter/internal/rhyme"
	"github.com/qiuyun/cipai-meter/internal/tone"
)

// Repository caches parsed rhyme.Records and cipai.Templates behind the
// on-disk store.
type Repository struct {
	db *DB
}

// NewRepository wraps db for use as a rhyme/template cache.
func NewRepository(db *DB) *Repository {
	return &Repository{db: db}
}

// SaveRhymeDict replaces the cached rhyme dictionary with records and
// their parallel character lists, inserted in batches of 500. A record
// whose (name, group) pair is already present is skipped.
func (r *Repository) SaveRhymeDict(records []*rhyme.Record, chars [][]rune) error {
	if err := r.db.Exec("DELETE FROM rhyme_records").Error; err != nil {
		return fmt.Errorf("store: failed to clear rhyme cache: %w", err)
	}
	if len(records) == 0 {
		return nil
	}

	n := len(records)
	if len(chars) < n {
		n = len(chars)
	}

	rows := make([]RhymeRecordRow, n)
	for i := 0; i < n; i++ {
		charsJSON, err := json.Marshal(chars[i])
		if err != nil {
			return fmt.Errorf("store: failed to marshal characters for %q: %w", records[i].Name, err)
		}
		rows[i] = RhymeRecordRow{
			Name:      records[i].Name,
			GroupName: records[i].Group,
			Tone:      int(records[i].Tone),
			Chars:     datatypes.JSON(charsJSON),
		}
	}

	logger.Info("caching rhyme dictionary", zap.Int("records", len(rows)))

	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}, {Name: "group_name"}},
		DoNothing: true,
	}).CreateInBatches(rows, 500).Error
}

// LoadRhymeDict reconstructs a rhyme.Dict from the cache. Returns an
// empty dictionary, not an error, if the cache has never been populated.
func (r *Repository) LoadRhymeDict() (*rhyme.Dict, error) {
	var rows []RhymeRecordRow
	if err := r.db.Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("store: failed to load rhyme cache: %w", err)
	}

	records := make([]*rhyme.Record, len(rows))
	chars := make([][]rune, len(rows))
	for i, row := range rows {
		records[i] = &rhyme.Record{
			ID:    rhyme.ID(row.ID),
			Name:  row.Name,
			Group: row.GroupName,
			Tone:  tone.BasicTone(row.Tone),
		}
		var runes []rune
		if err := json.Unmarshal(row.Chars, &runes); err != nil {
			return nil, fmt.Errorf("store: failed to unmarshal characters for %q: %w", row.Name, err)
		}
		chars[i] = runes
	}

	return rhyme.Build(records, chars), nil
}

// SaveTemplates replaces the cached template library with templates,
// reporting progress on bar if non-nil.
func (r *Repository) SaveTemplates(templates []*cipai.Template, bar *mpb.Bar) error {
	if err := r.db.Exec("DELETE FROM templates").Error; err != nil {
		return fmt.Errorf("store: failed to clear template cache: %w", err)
	}
	if len(templates) == 0 {
		return nil
	}

	rows := make([]TemplateRow, len(templates))
	for i, tpl := range templates {
		row, err := toTemplateRow(tpl)
		if err != nil {
			return err
		}
		rows[i] = row
	}

	logger.Info("caching template library", zap.Int("templates", len(rows)))

	err := r.db.Transaction(func(tx *gorm.DB) error {
		for i := range rows {
			if err := tx.Create(&rows[i]).Error; err != nil {
				return err
			}
			if bar != nil {
				bar.Increment()
			}
		}
		return nil
	})
	return err
}

// LoadTemplates reconstructs every cached template.
func (r *Repository) LoadTemplates() ([]*cipai.Template, error) {
	var rows []TemplateRow
	if err := r.db.Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("store: failed to load template cache: %w", err)
	}

	templates := make([]*cipai.Template, len(rows))
	for i, row := range rows {
		tpl, err := fromTemplateRow(row)
		if err != nil {
			return nil, err
		}
		templates[i] = tpl
	}
	return templates, nil
}

// GetTemplateByName returns every cached variant whose canonical or
// alternate name matches name. The names column is JSON, so this filters
// in Go rather than with a column predicate.
func (r *Repository) GetTemplateByName(name string) ([]*cipai.Template, error) {
	all, err := r.LoadTemplates()
	if err != nil {
		return nil, err
	}
	var matches []*cipai.Template
	for _, tpl := range all {
		for _, n := range tpl.Names {
			if n == name {
				matches = append(matches, tpl)
				break
			}
		}
	}
	return matches, nil
}

func toTemplateRow(tpl *cipai.Template) (TemplateRow, error) {
	namesJSON, err := json.Marshal(tpl.Names)
	if err != nil {
		return TemplateRow{}, fmt.Errorf("store: failed to marshal names: %w", err)
	}

	meter := make([]meterLineJSON, len(tpl.Meter))
	for i, line := range tpl.Meter {
		slots := make(meterLineJSON, len(line))
		for j, slot := range line {
			slots[j] = meterSlotJSON{Type: int(slot.Type), RhymeGroup: slot.RhymeGroup}
		}
		meter[i] = slots
	}
	meterJSON, err := json.Marshal(meter)
	if err != nil {
		return TemplateRow{}, fmt.Errorf("store: failed to marshal meter: %w", err)
	}

	return TemplateRow{
		Names:       datatypes.JSON(namesJSON),
		Variant:     tpl.Variant,
		Description: tpl.Description,
		Meter:       datatypes.JSON(meterJSON),
	}, nil
}

func fromTemplateRow(row TemplateRow) (*cipai.Template, error) {
	var names []string
	if err := json.Unmarshal(row.Names, &names); err != nil {
		return nil, fmt.Errorf("store: failed to unmarshal names: %w", err)
	}

	var meter []meterLineJSON
	if err := json.Unmarshal(row.Meter, &meter); err != nil {
		return nil, fmt.Errorf("store: failed to unmarshal meter: %w", err)
	}

	lines := make([]cipai.Line, len(meter))
	for i, slots := range meter {
		line := make(cipai.Line, len(slots))
		for j, s := range slots {
			line[j] = tone.MeterTone{Type: tone.MeterToneType(s.Type), RhymeGroup: s.RhymeGroup}
		}
		lines[i] = line
	}

	return &cipai.Template{
		Names:       names,
		Variant:     row.Variant,
		Description: row.Description,
		Meter:       lines,
	}, nil
}

// NewProgressBar creates a caching progress bar for SaveTemplates callers
// that want visible feedback for large libraries.
func NewProgressBar(progress *mpb.Progress, total int) *mpb.Bar {
	return progress.AddBar(int64(total),
		mpb.PrependDecorators(
			decor.Name("Caching templates: ", decor.WC{W: 19, C: decor.DindentRight}),
			decor.CountersNoUnit("%d / %d", decor.WCSyncWidth),
		),
		mpb.AppendDecorators(decor.Percentage(decor.WC{W: 5})),
	)
}
