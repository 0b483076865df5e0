package usecases

import (
	"context"
	"strconv"
	"strings"

	"github.com/bid-labs/ticketgen/internal/domain/catalog"
	"github.com/bid-labs/ticketgen/internal/domain/submission"
	"github.com/bid-labs/ticketgen/internal/shared/errors"
)

// Resolved is a submission whose identifier fields matched active catalog rows.
type Resolved struct {
	Fields   submission.FieldMap
	Client   *catalog.Client
	Project  *catalog.Project
	TestType *catalog.ServiceType
}

// FieldValidator checks mandatory fields and resolves the three identifiers.
// It never writes.
type FieldValidator struct {
	layout       submission.Layout
	clients      catalog.ClientRepository
	projects     catalog.ProjectRepository
	serviceTypes catalog.ServiceTypeRepository
}

func NewFieldValidator(
	layout submission.Layout,
	clients catalog.ClientRepository,
	projects catalog.ProjectRepository,
	serviceTypes catalog.ServiceTypeRepository,
) *FieldValidator {
	return &FieldValidator{
		layout:       layout,
		clients:      clients,
		projects:     projects,
		serviceTypes: serviceTypes,
	}
}

// Validate returns a *submission.MissingFieldError listing every empty
// mandatory field, or a *submission.ValidationFailedError with every
// identifier problem in field order. Catalog lookups only start once all
// mandatory fields are present.
func (v *FieldValidator) Validate(ctx context.Context, fields submission.FieldMap) (*Resolved, error) {
	var missing []submission.FieldRef
	for _, f := range submission.MandatoryFields() {
		if strings.TrimSpace(fields.Get(f)) == "" {
			missing = append(missing, v.ref(f))
		}
	}
	if len(missing) > 0 {
		return nil, &submission.MissingFieldError{Fields: missing}
	}

	res := &Resolved{Fields: fields.Clone()}
	var problems []error

	if id, ok := v.parseID(fields, submission.FieldClient, &problems); ok {
		client, err := v.clients.GetByID(ctx, uint(id))
		problem, err := v.check(submission.FieldClient, id, client != nil && client.IsActive(), err)
		if err != nil {
			return nil, err
		}
		if problem != nil {
			problems = append(problems, problem)
		} else {
			res.Client = client
		}
	}

	if id, ok := v.parseID(fields, submission.FieldProject, &problems); ok {
		project, err := v.projects.GetByID(ctx, uint(id))
		problem, err := v.check(submission.FieldProject, id, project != nil && project.IsActive(), err)
		if err != nil {
			return nil, err
		}
		if problem != nil {
			problems = append(problems, problem)
		} else {
			res.Project = project
		}
	}

	if id, ok := v.parseID(fields, submission.FieldTestType, &problems); ok {
		st, err := v.serviceTypes.GetByID(ctx, uint(id))
		problem, err := v.check(submission.FieldTestType, id, st != nil && st.IsActive(), err)
		if err != nil {
			return nil, err
		}
		if problem != nil {
			problems = append(problems, problem)
		} else {
			res.TestType = st
		}
	}

	if res.Client != nil && res.Project != nil && !res.Project.BelongsTo(res.Client.ID()) {
		problems = append(problems, &submission.ProjectMismatchError{
			FieldRef:  v.ref(submission.FieldProject),
			ProjectID: uint64(res.Project.ID()),
			ClientID:  uint64(res.Client.ID()),
		})
	}

	if len(problems) > 0 {
		return nil, &submission.ValidationFailedError{Problems: problems}
	}
	return res, nil
}

func (v *FieldValidator) ref(f submission.FieldName) submission.FieldRef {
	return submission.FieldRef{
		Field: f,
		Label: v.layout.Label(f),
		Cell:  v.layout.CellRef(f),
	}
}

// parseID accepts positive decimal ids only. Signed values such as "-5" are
// invalid identifiers rather than lookups that miss.
func (v *FieldValidator) parseID(fields submission.FieldMap, f submission.FieldName, problems *[]error) (uint64, bool) {
	raw := strings.TrimSpace(fields.Get(f))
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		*problems = append(*problems, &submission.InvalidIdentifierError{FieldRef: v.ref(f), Value: raw})
		return 0, false
	}
	return id, true
}

// check classifies a lookup result. Only storage failures come back as err.
func (v *FieldValidator) check(f submission.FieldName, id uint64, active bool, lookupErr error) (problem error, err error) {
	switch {
	case lookupErr != nil && errors.IsNotFoundError(lookupErr):
		return &submission.UnresolvedReferenceError{FieldRef: v.ref(f), ID: id}, nil
	case lookupErr != nil:
		return nil, lookupErr
	case !active:
		return &submission.InactiveReferenceError{FieldRef: v.ref(f), ID: id}, nil
	}
	return nil, nil
}
