package adapters

import (
	"errors"

	"github.com/de-tools/deal-atlas/pkg/models/api"
	"github.com/de-tools/deal-atlas/pkg/models/domain"
	"github.com/de-tools/deal-atlas/pkg/services/schema"
)

const (
	ErrorKindMissingInput   = "missing_input"
	ErrorKindDomain         = "domain"
	ErrorKindMalformedInput = "malformed_input"
)

func MapReportDetailDomainToApi(d domain.ReportDetail) api.ReportDetail {
	return api.ReportDetail{
		Name:  d.Name,
		Value: d.Value,
	}
}

func MapReportSectionDomainToApi(s domain.ReportSection) api.ReportSection {
	res := api.ReportSection{
		Title:   s.Title,
		Sources: s.Sources,
		Details: make([]api.ReportDetail, 0, len(s.Details)),
	}
	for _, d := range s.Details {
		res.Details = append(res.Details, MapReportDetailDomainToApi(d))
	}
	return res
}

func MapReportDomainToApi(r domain.Report) api.Report {
	res := api.Report{
		Title:    r.Title,
		Source:   r.Source,
		Debug:    r.Debug,
		Sections: make([]api.ReportSection, 0, len(r.Sections)),
	}
	for _, s := range r.Sections {
		res.Sections = append(res.Sections, MapReportSectionDomainToApi(s))
	}
	return res
}

func MapProfilesDomainToApi(names []string) []api.Profile {
	res := make([]api.Profile, 0, len(names))
	for _, name := range names {
		res = append(res, api.Profile{Name: name})
	}
	return res
}

// MapErrorDomainToApi classifies err by the domain error it wraps.
func MapErrorDomainToApi(err error) api.Error {
	res := api.Error{Error: err.Error()}

	var missing *domain.MissingInputError
	var domainErr *domain.DomainError
	var malformed *domain.MalformedInputError
	switch {
	case errors.As(err, &missing):
		res.Kind = ErrorKindMissingInput
		res.Field = missing.Section
		if missing.Key != "" {
			res.Field = schema.QualifiedKey(missing.Section, missing.Key)
		}
	case errors.As(err, &domainErr):
		res.Kind = ErrorKindDomain
		res.Field = domainErr.Field
	case errors.As(err, &malformed):
		res.Kind = ErrorKindMalformedInput
	}
	return res
}
