package seeds

import (
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"github.com/bid-labs/ticketgen/internal/domain/catalog"
	"github.com/bid-labs/ticketgen/internal/infrastructure/persistence/models"
	"github.com/bid-labs/ticketgen/internal/shared/biztime"
)

// CatalogFile is the YAML layout accepted by "catalog seed". Ids are optional;
// when given they are kept so workbooks that reference them keep resolving.
type CatalogFile struct {
	Clients      []ClientSeed      `yaml:"clients"`
	ServiceTypes []ServiceTypeSeed `yaml:"service_types"`
	Projects     []ProjectSeed     `yaml:"projects"`
}

type ClientSeed struct {
	ID     uint   `yaml:"id"`
	Name   string `yaml:"name"`
	Code   string `yaml:"code"`
	Active *bool  `yaml:"active"`
}

type ServiceTypeSeed struct {
	ID           uint   `yaml:"id"`
	Name         string `yaml:"name"`
	Nomenclature string `yaml:"nomenclature"`
	Active       *bool  `yaml:"active"`
}

type ProjectSeed struct {
	ID            uint   `yaml:"id"`
	ClientID      uint   `yaml:"client_id"`
	Name          string `yaml:"name"`
	Code          string `yaml:"code"`
	Nomenclature  string `yaml:"nomenclature"`
	ServiceTypeID *uint  `yaml:"service_type_id"`
	Description   string `yaml:"description"`
	StartDate     string `yaml:"start_date"`
	EndDate       string `yaml:"end_date"`
	Active        *bool  `yaml:"active"`
}

// SeedResult counts rows per outcome.
type SeedResult struct {
	Created  int
	Existing int
}

func LoadCatalogFile(path string) (*CatalogFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer f.Close()
	return DecodeCatalog(f)
}

func DecodeCatalog(r io.Reader) (*CatalogFile, error) {
	var file CatalogFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	return &file, nil
}

// SeedCatalog inserts rows that do not exist yet, matching on id when given
// and on the business code otherwise. Existing rows are left untouched, so
// the seed can be applied repeatedly.
func SeedCatalog(db *gorm.DB, file *CatalogFile) (SeedResult, error) {
	var result SeedResult
	err := db.Transaction(func(tx *gorm.DB) error {
		for _, s := range file.Clients {
			c, err := catalog.NewClient(s.Name, s.Code)
			if err != nil {
				return fmt.Errorf("client %q: %w", s.Code, err)
			}
			model := models.ClientModel{ID: s.ID, Name: c.Name(), Code: c.Code(), Active: activeOrDefault(s.Active)}
			if err := firstOrCreate(tx, &model, s.ID, model.Active, "code = ?", model.Code, &result); err != nil {
				return err
			}
		}

		for _, s := range file.ServiceTypes {
			st, err := catalog.NewServiceType(s.Name, s.Nomenclature)
			if err != nil {
				return fmt.Errorf("service type %q: %w", s.Nomenclature, err)
			}
			model := models.ServiceTypeModel{ID: s.ID, Name: st.Name(), Nomenclature: st.Nomenclature(), Active: activeOrDefault(s.Active)}
			if err := firstOrCreate(tx, &model, s.ID, model.Active, "nomenclature = ?", model.Nomenclature, &result); err != nil {
				return err
			}
		}

		for _, s := range file.Projects {
			details := catalog.ProjectDetails{
				ClientID:      s.ClientID,
				Name:          s.Name,
				Code:          s.Code,
				Nomenclature:  s.Nomenclature,
				ServiceTypeID: s.ServiceTypeID,
				Description:   s.Description,
			}
			var err error
			if details.StartDate, err = parseDate(s.StartDate); err != nil {
				return fmt.Errorf("project %q start_date: %w", s.Code, err)
			}
			if details.EndDate, err = parseDate(s.EndDate); err != nil {
				return fmt.Errorf("project %q end_date: %w", s.Code, err)
			}
			p, err := catalog.NewProject(details)
			if err != nil {
				return fmt.Errorf("project %q: %w", s.Code, err)
			}
			model := models.ProjectModel{
				ID:            s.ID,
				ClientID:      p.ClientID(),
				Name:          p.Name(),
				Code:          p.Code(),
				Nomenclature:  p.Nomenclature(),
				ServiceTypeID: p.ServiceTypeID(),
				Description:   p.Description(),
				StartDate:     p.StartDate(),
				EndDate:       p.EndDate(),
				Active:        activeOrDefault(s.Active),
			}
			if err := firstOrCreate(tx, &model, s.ID, model.Active, "code = ?", model.Code, &result); err != nil {
				return err
			}
		}
		return nil
	})
	return result, err
}

func firstOrCreate(tx *gorm.DB, model interface{}, id uint, active bool, cond string, arg interface{}, result *SeedResult) error {
	q := tx.Model(model)
	if id != 0 {
		q = q.Where("id = ?", id)
	} else {
		q = q.Where(cond, arg)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		result.Existing++
		return nil
	}

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to seed row: %w", err)
	}
	// gorm leaves zero values with a column default out of the insert.
	if !active {
		if err := tx.Model(model).Update("active", false).Error; err != nil {
			return fmt.Errorf("failed to seed row: %w", err)
		}
	}
	result.Created++
	return nil
}

func activeOrDefault(active *bool) bool {
	if active == nil {
		return true
	}
	return *active
}

func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := biztime.ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
