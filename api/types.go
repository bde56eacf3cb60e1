package api

import "caseflow/domain/servicecase"

// CaseRequest is the inbound payload for a single service case.
type CaseRequest struct {
	DeviceType       string `json:"device_type" binding:"required"`
	Brand            string `json:"brand" binding:"required"`
	Age              int    `json:"age" binding:"required,gte=1,lte=50"`
	ErrorDescription string `json:"error_description" binding:"required"`
}

func (r CaseRequest) toInputs() servicecase.CaseInputs {
	return servicecase.CaseInputs{
		DeviceType:       r.DeviceType,
		Brand:            r.Brand,
		Age:              r.Age,
		ErrorDescription: r.ErrorDescription,
	}
}

// BatchRequest submits multiple cases in one call.
type BatchRequest struct {
	Cases []CaseRequest `json:"cases" binding:"required,min=1,max=500"`
}

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// DemoScenario is a ready-to-submit example case.
type DemoScenario struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Request     CaseRequest `json:"request"`
	Expected    string      `json:"expected_recommendation"`
}
