package mappers

import (
	"github.com/bid-labs/ticketgen/internal/domain/submission"
	"github.com/bid-labs/ticketgen/internal/infrastructure/persistence/models"
)

type SubmissionMapper interface {
	ToModel(s *submission.Snapshot) *models.SubmissionModel
	ToDomain(model *models.SubmissionModel) *submission.Snapshot
}

type SubmissionMapperImpl struct{}

func NewSubmissionMapper() SubmissionMapper {
	return &SubmissionMapperImpl{}
}

func (m *SubmissionMapperImpl) ToModel(s *submission.Snapshot) *models.SubmissionModel {
	return &models.SubmissionModel{
		ID:                   s.ID(),
		Client:               s.Field(submission.FieldClient),
		Project:              s.Field(submission.FieldProject),
		TestType:             s.Field(submission.FieldTestType),
		ServiceTag:           s.ServiceTag(),
		Requester:            s.Field(submission.FieldRequester),
		ProjectLead:          s.Field(submission.FieldProjectLead),
		ApplicationType:      s.Field(submission.FieldApplicationType),
		Version:              s.Field(submission.FieldVersion),
		ReleaseFunctionality: s.Field(submission.FieldReleaseFunctionality),
		ChangeDetail:         s.Field(submission.FieldChangeDetail),
		ChangeJustification:  s.Field(submission.FieldChangeJustification),
		SourceName:           s.SourceName(),
		TicketCode:           s.TicketCode(),
		ExtractedAt:          s.ExtractedAt(),
	}
}

func (m *SubmissionMapperImpl) ToDomain(model *models.SubmissionModel) *submission.Snapshot {
	if model == nil {
		return nil
	}
	fields := submission.FieldMap{
		submission.FieldClient:               model.Client,
		submission.FieldProject:              model.Project,
		submission.FieldTestType:             model.TestType,
		submission.FieldRequester:            model.Requester,
		submission.FieldProjectLead:          model.ProjectLead,
		submission.FieldApplicationType:      model.ApplicationType,
		submission.FieldVersion:              model.Version,
		submission.FieldReleaseFunctionality: model.ReleaseFunctionality,
		submission.FieldChangeDetail:         model.ChangeDetail,
		submission.FieldChangeJustification:  model.ChangeJustification,
	}
	return submission.ReconstructSnapshot(model.ID, fields, model.ServiceTag, model.SourceName, model.TicketCode, model.ExtractedAt)
}
