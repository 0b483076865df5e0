// Package export dumps persisted rows as CSV tables, ZIP backups and the
// ticket report rows consumed by the xlsx writer.
package export

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/bid-labs/ticketgen/internal/infrastructure/persistence/models"
	"github.com/bid-labs/ticketgen/internal/shared/biztime"
	"github.com/bid-labs/ticketgen/internal/shared/constants"
	"github.com/bid-labs/ticketgen/internal/shared/db"
)

const (
	TableClient      = "client"
	TableProject     = "project"
	TableServiceType = "servicetype"
	TableTicket      = "ticket"
	TableSnapshot    = "snapshot"

	batchSize = 500
	utf8BOM   = "\ufeff"
)

// ErrUnknownTable is returned for table names outside Tables().
var ErrUnknownTable = errors.New("unknown export table")

type tableSpec struct {
	header []string
	dump   func(q *gorm.DB, emit func([]string) error) error
}

var tableSpecs = map[string]tableSpec{
	TableClient: {
		header: []string{"id", "name", "code", "active", "created_at", "updated_at"},
		dump: func(q *gorm.DB, emit func([]string) error) error {
			return inBatches(q, func(m *models.ClientModel) []string {
				return []string{id(m.ID), m.Name, m.Code, strconv.FormatBool(m.Active), stamp(m.CreatedAt), stamp(m.UpdatedAt)}
			}, emit)
		},
	},
	TableServiceType: {
		header: []string{"id", "name", "nomenclature", "active", "created_at", "updated_at"},
		dump: func(q *gorm.DB, emit func([]string) error) error {
			return inBatches(q, func(m *models.ServiceTypeModel) []string {
				return []string{id(m.ID), m.Name, m.Nomenclature, strconv.FormatBool(m.Active), stamp(m.CreatedAt), stamp(m.UpdatedAt)}
			}, emit)
		},
	},
	TableProject: {
		header: []string{
			"id", "client_id", "name", "code", "nomenclature", "service_type_id", "description",
			"active", "start_date", "end_date", "created_at", "updated_at",
		},
		dump: func(q *gorm.DB, emit func([]string) error) error {
			return inBatches(q, func(m *models.ProjectModel) []string {
				return []string{
					id(m.ID), id(m.ClientID), m.Name, m.Code, m.Nomenclature, optID(m.ServiceTypeID), m.Description,
					strconv.FormatBool(m.Active), date(m.StartDate), date(m.EndDate), stamp(m.CreatedAt), stamp(m.UpdatedAt),
				}
			}, emit)
		},
	},
	TableTicket: {
		header: []string{
			"id", "codigo", "empresa", "tipo_servicio", "funcion", "version", "cliente", "proyecto",
			"consecutivo", "estado", "requester", "project_lead", "version_number",
			"client_id", "project_id", "service_type_id", "submission_id", "created_at", "updated_at",
		},
		dump: func(q *gorm.DB, emit func([]string) error) error {
			return inBatches(q, func(m *models.TicketModel) []string {
				return []string{
					id(m.ID), m.Codigo, m.EmpresaCode, m.TipoServicioCode, m.FuncionCode, m.VersionCode,
					m.ClienteCode, m.ProyectoCode, strconv.Itoa(m.Consecutivo), m.Estado,
					m.Requester, m.ProjectLead, m.VersionNumber,
					optID(m.ClientID), optID(m.ProjectID), optID(m.ServiceTypeID), optID(m.SubmissionID),
					stamp(m.CreatedAt), stamp(m.UpdatedAt),
				}
			}, emit)
		},
	},
	TableSnapshot: {
		header: []string{
			"id", "client", "project", "test_type", "service_tag", "requester", "project_lead",
			"application_type", "version", "release_functionality", "change_detail",
			"change_justification", "source_name", "ticket_code", "extracted_at",
		},
		dump: func(q *gorm.DB, emit func([]string) error) error {
			return inBatches(q, func(m *models.SubmissionModel) []string {
				return []string{
					id(m.ID), m.Client, m.Project, m.TestType, m.ServiceTag, m.Requester, m.ProjectLead,
					m.ApplicationType, m.Version, m.ReleaseFunctionality, m.ChangeDetail,
					m.ChangeJustification, m.SourceName, m.TicketCode, stamp(m.ExtractedAt),
				}
			}, emit)
		},
	},
}

// Tables returns the exportable table names in a stable order.
func Tables() []string {
	names := make([]string, 0, len(tableSpecs))
	for name := range tableSpecs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func IsTable(name string) bool {
	_, ok := tableSpecs[name]
	return ok
}

// inBatches walks a table in primary key order without loading it whole.
func inBatches[M any](q *gorm.DB, row func(*M) []string, emit func([]string) error) error {
	var batch []M
	result := q.FindInBatches(&batch, batchSize, func(_ *gorm.DB, _ int) error {
		for i := range batch {
			if err := emit(row(&batch[i])); err != nil {
				return err
			}
		}
		return nil
	})
	return result.Error
}

// TableExporter renders database tables as UTF-8 CSV with a byte order mark
// so spreadsheet tools detect the encoding.
type TableExporter struct {
	db *gorm.DB
}

func NewTableExporter(db *gorm.DB) *TableExporter {
	return &TableExporter{db: db}
}

func (e *TableExporter) HasTable(name string) bool {
	return IsTable(name)
}

// WriteCSV writes table to w. Unknown names return ErrUnknownTable before
// anything is written.
func (e *TableExporter) WriteCSV(ctx context.Context, table string, w io.Writer) error {
	spec, ok := tableSpecs[table]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTable, table)
	}

	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(spec.header); err != nil {
		return err
	}

	q := db.GetTxFromContext(ctx, e.db)
	if err := spec.dump(q, cw.Write); err != nil {
		return fmt.Errorf("failed to export %s: %w", table, err)
	}

	cw.Flush()
	return cw.Error()
}

func id(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}

func optID(v *uint) string {
	if v == nil {
		return ""
	}
	return id(*v)
}

func stamp(t time.Time) string {
	return biztime.Format(t, constants.ExportTableTimeFormat)
}

func date(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
