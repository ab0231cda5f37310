// Package legacy imports archives exported from the project's previous
// MongoDB deployment. Each archive is a zip of mongoexport files
// (parks.json, users.json, reviews.json) in MongoDB extended JSON, either one
// document per line or a single JSON array.
package legacy

import (
	"archive/zip"
	"bufio"
	"bytes"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/parkatlas/core/internal/models"
)

// maxEntrySize bounds a single archive entry to keep a hostile zip from
// exhausting memory.
const maxEntrySize = 64 << 20

// Stats summarises one import run.
type Stats struct {
	Parks   int `json:"parks"`
	Users   int `json:"users"`
	Reviews int `json:"reviews"`
	Hearts  int `json:"hearts"`
	Skipped int `json:"skipped"`
}

type legacyPark struct {
	ID          primitive.ObjectID `bson:"_id"`
	Slug        string             `bson:"slug"`
	Name        string             `bson:"name"`
	Description string             `bson:"description"`
	Tags        []string           `bson:"tags"`
	Location    struct {
		Coordinates []float64 `bson:"coordinates"`
		Address     string    `bson:"address"`
	} `bson:"location"`
	Photo   string             `bson:"photo"`
	Author  primitive.ObjectID `bson:"author"`
	Created time.Time          `bson:"created"`
}

type legacyUser struct {
	ID     primitive.ObjectID   `bson:"_id"`
	Email  string               `bson:"email"`
	Name   string               `bson:"name"`
	Hearts []primitive.ObjectID `bson:"hearts"`
}

type legacyReview struct {
	ID      primitive.ObjectID `bson:"_id"`
	Park    primitive.ObjectID `bson:"park"`
	Author  primitive.ObjectID `bson:"author"`
	Rating  int                `bson:"rating"`
	Text    string             `bson:"text"`
	Created time.Time          `bson:"created"`
}

type Service struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewService(db *gorm.DB, log *zap.Logger) *Service {
	return &Service{db: db, log: log}
}

// ImportArchive reads a legacy export zip and inserts its documents. Rows that
// already exist are left untouched rather than overwritten, so re-running an
// import is safe.
func (s *Service) ImportArchive(zr *zip.Reader) (Stats, error) {
	var stats Stats

	files := map[string][]byte{}
	for _, f := range zr.File {
		name := path.Base(f.Name)
		switch name {
		case "parks.json", "users.json", "reviews.json":
		default:
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return stats, fmt.Errorf("open %s: %w", f.Name, err)
		}
		data, err := io.ReadAll(io.LimitReader(rc, maxEntrySize))
		rc.Close()
		if err != nil {
			return stats, fmt.Errorf("read %s: %w", f.Name, err)
		}
		files[name] = data
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		// Users first, then parks, then reviews: insertion order follows the
		// foreign keys.
		if data, ok := files["users.json"]; ok {
			if err := s.importUsers(tx, data, &stats); err != nil {
				return err
			}
		}
		if data, ok := files["parks.json"]; ok {
			if err := s.importParks(tx, data, &stats); err != nil {
				return err
			}
		}
		if data, ok := files["reviews.json"]; ok {
			if err := s.importReviews(tx, data, &stats); err != nil {
				return err
			}
		}
		// Hearts reference parks, so they wait for both.
		if data, ok := files["users.json"]; ok {
			if err := s.importHearts(tx, data, &stats); err != nil {
				return err
			}
		}
		return nil
	})
	return stats, err
}

func (s *Service) importUsers(tx *gorm.DB, data []byte, stats *Stats) error {
	return eachDocument(data, func(raw []byte) error {
		var doc legacyUser
		if err := bson.UnmarshalExtJSON(raw, false, &doc); err != nil {
			s.log.Warn("skipping malformed user document", zap.Error(err))
			stats.Skipped++
			return nil
		}
		user := models.UserModel{
			Base:     models.Base{ID: doc.ID.Hex()},
			Username: doc.Email,
			Name:     doc.Name,
		}
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&user)
		if res.Error != nil {
			return res.Error
		}
		stats.Users += int(res.RowsAffected)
		return nil
	})
}

func (s *Service) importParks(tx *gorm.DB, data []byte, stats *Stats) error {
	return eachDocument(data, func(raw []byte) error {
		var doc legacyPark
		if err := bson.UnmarshalExtJSON(raw, false, &doc); err != nil {
			s.log.Warn("skipping malformed park document", zap.Error(err))
			stats.Skipped++
			return nil
		}
		park := models.ParkModel{
			Base:        models.Base{ID: doc.ID.Hex(), CreatedAt: doc.Created},
			Slug:        doc.Slug,
			Name:        doc.Name,
			Description: doc.Description,
			Tags:        doc.Tags,
			Address:     doc.Location.Address,
			Photo:       doc.Photo,
			AuthorID:    doc.Author.Hex(),
		}
		if len(doc.Location.Coordinates) == 2 {
			park.Lng = doc.Location.Coordinates[0]
			park.Lat = doc.Location.Coordinates[1]
		}
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&park)
		if res.Error != nil {
			return res.Error
		}
		stats.Parks += int(res.RowsAffected)
		return nil
	})
}

func (s *Service) importReviews(tx *gorm.DB, data []byte, stats *Stats) error {
	return eachDocument(data, func(raw []byte) error {
		var doc legacyReview
		if err := bson.UnmarshalExtJSON(raw, false, &doc); err != nil {
			s.log.Warn("skipping malformed review document", zap.Error(err))
			stats.Skipped++
			return nil
		}
		review := models.ReviewModel{
			Base:     models.Base{ID: doc.ID.Hex(), CreatedAt: doc.Created},
			ParkID:   doc.Park.Hex(),
			AuthorID: doc.Author.Hex(),
			Rating:   doc.Rating,
			Text:     doc.Text,
		}
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&review)
		if res.Error != nil {
			return res.Error
		}
		stats.Reviews += int(res.RowsAffected)
		return nil
	})
}

func (s *Service) importHearts(tx *gorm.DB, data []byte, stats *Stats) error {
	return eachDocument(data, func(raw []byte) error {
		var doc legacyUser
		if err := bson.UnmarshalExtJSON(raw, false, &doc); err != nil {
			// Already counted as skipped during the user pass.
			return nil
		}
		for _, parkID := range doc.Hearts {
			heart := models.HeartModel{UserID: doc.ID.Hex(), ParkID: parkID.Hex()}
			res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&heart)
			if res.Error != nil {
				return res.Error
			}
			stats.Hearts += int(res.RowsAffected)
		}
		return nil
	})
}

// eachDocument invokes fn once per extended-JSON document. mongoexport writes
// one document per line by default, or a single JSON array with --jsonArray.
func eachDocument(data []byte, fn func(raw []byte) error) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil
	}

	if trimmed[0] == '[' {
		var wrapper struct {
			Docs []bson.Raw `bson:"docs"`
		}
		payload := append(append([]byte(`{"docs":`), trimmed...), '}')
		if err := bson.UnmarshalExtJSON(payload, false, &wrapper); err != nil {
			return fmt.Errorf("parse json array: %w", err)
		}
		for _, doc := range wrapper.Docs {
			// Raw.String renders canonical extended JSON, which is what fn
			// expects for the line-oriented case too.
			if err := fn([]byte(doc.String())); err != nil {
				return err
			}
		}
		return nil
	}

	sc := bufio.NewScanner(bytes.NewReader(trimmed))
	sc.Buffer(make([]byte, 64*1024), 4<<20)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if err := fn([]byte(line)); err != nil {
			return err
		}
	}
	return sc.Err()
}
