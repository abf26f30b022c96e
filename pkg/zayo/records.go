package zayo

import (
	"fmt"
	"slices"
	"strings"
)

// Case represents a maintenance case.
type Case struct {
	CaseID               string   `json:"caseId"               yaml:"case_id"`
	CaseNumber           string   `json:"caseNumber"           yaml:"case_number"`
	Urgency              string   `json:"urgency"              yaml:"urgency"`
	LevelOfImpact        string   `json:"levelOfImpact"        yaml:"level_of_impact"`
	Status               string   `json:"status"               yaml:"status"`
	PrimaryDate          string   `json:"primaryDate"          yaml:"primary_date"`
	PrimaryDate2         string   `json:"x2ndPrimaryDate"      yaml:"primary_date_2,omitempty"`
	PrimaryDate3         string   `json:"x3rdPrimaryDate"      yaml:"primary_date_3,omitempty"`
	FromTime             string   `json:"fromTime"             yaml:"from_time"`
	ToTime               string   `json:"toTime"               yaml:"to_time"`
	ReasonForMaintenance string   `json:"reasonForMaintenance" yaml:"reason"`
	Location             string   `json:"location"             yaml:"location"`
	Longitude            *float64 `json:"longitude,omitempty"  yaml:"longitude,omitempty"`
	Latitude             *float64 `json:"latitude,omitempty"   yaml:"latitude,omitempty"`
}

// PrimaryDates returns the non-empty primary dates in ascending order.
func (c *Case) PrimaryDates() []string {
	dates := make([]string, 0, 3)

	for _, d := range []string{c.PrimaryDate, c.PrimaryDate2, c.PrimaryDate3} {
		if d != "" {
			dates = append(dates, d)
		}
	}

	slices.Sort(dates)

	return dates
}

// IsClosed reports whether the case status is Closed.
func (c *Case) IsClosed() bool {
	return CaseStatus(c.Status) == StatusClosed
}

// Impact links a case to an affected circuit.
type Impact struct {
	CaseNumber     string `json:"caseNumber"     yaml:"case_number"`
	CircuitID      string `json:"circuitId"      yaml:"circuit_id"`
	ExpectedImpact string `json:"expectedImpact" yaml:"expected_impact"`
	CLLIA          string `json:"clliA"          yaml:"clli_a"`
	CLLIZ          string `json:"clliZ"          yaml:"clli_z"`
}

// Notification is the header of a notification email sent for a case.
type Notification struct {
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"`
	Date string `json:"date" yaml:"date"`
}

// NotificationDetail is a full notification email.
type NotificationDetail struct {
	Name         string `json:"name"         yaml:"name"`
	Type         string `json:"type"         yaml:"type"`
	Date         string `json:"date"         yaml:"date"`
	EmailSubject string `json:"emailSubject" yaml:"email_subject"`
	EmailList    string `json:"emailList"    yaml:"email_list"`
	EmailBody    string `json:"emailBody"    yaml:"email_body"`
}

// Recipients splits EmailList on ";" and returns trimmed, sorted addresses.
func (n *NotificationDetail) Recipients() []string {
	parts := strings.Split(n.EmailList, ";")
	out := make([]string, 0, len(parts))

	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}

	slices.Sort(out)

	return out
}

// ServiceLocation is an endpoint of a service component.
type ServiceLocation struct {
	Name       string `json:"name"       yaml:"name"`
	City       string `json:"city"       yaml:"city"`
	State      string `json:"state"      yaml:"state"`
	PostalCode string `json:"postalCode" yaml:"postal_code"`
}

// Address renders the location as two lines.
func (l ServiceLocation) Address() string {
	return fmt.Sprintf("%s\n%s, %s %s", l.Name, l.City, l.State, l.PostalCode)
}

// ServiceComponent is a circuit making up a service.
type ServiceComponent struct {
	CircuitID string            `json:"circuitId" yaml:"circuit_id"`
	Bandwidth string            `json:"bandwidth" yaml:"bandwidth"`
	Locations []ServiceLocation `json:"locations" yaml:"locations"`
}

// Service is a service inventory record.
type Service struct {
	ServiceName     string             `json:"serviceName"     yaml:"service_name"`
	Status          string             `json:"status"          yaml:"status"`
	ProductGroup    string             `json:"productGroup"    yaml:"product_group"`
	ProductCategory string             `json:"productCategory" yaml:"product_category"`
	Product         string             `json:"product"         yaml:"product,omitempty"`
	Term            string             `json:"term"            yaml:"term,omitempty"`
	Components      []ServiceComponent `json:"components"      yaml:"components"`
}

// CircuitID returns the circuit of the first component, or "".
func (s *Service) CircuitID() string {
	if len(s.Components) == 0 {
		return ""
	}

	return s.Components[0].CircuitID
}

// Bandwidth returns the bandwidth of the first component, or "".
func (s *Service) Bandwidth() string {
	if len(s.Components) == 0 {
		return ""
	}

	return s.Components[0].Bandwidth
}

// Location returns the i-th location of the first component.
func (s *Service) Location(i int) (ServiceLocation, bool) {
	if len(s.Components) == 0 || i < 0 || i >= len(s.Components[0].Locations) {
		return ServiceLocation{}, false
	}

	return s.Components[0].Locations[i], true
}

// CaseDetails is a case with its impacts and notification emails. Found is
// false when the case lookup matched no record, in which case the slices are
// empty.
type CaseDetails struct {
	Found         bool                 `json:"found"         yaml:"found"`
	Case          *Case                `json:"case"          yaml:"case"`
	Impacts       []Impact             `json:"impacts"       yaml:"impacts"`
	Notifications []NotificationDetail `json:"notifications" yaml:"notifications"`
	FailedPages   []PageFailure        `json:"failed_pages,omitempty" yaml:"failed_pages,omitempty"`
}

// FormatCircuitID normalises a circuit id for comparison: surrounding space
// trimmed, inner runs of whitespace collapsed to one space, upper-cased.
func FormatCircuitID(id string) string {
	return strings.ToUpper(strings.Join(strings.Fields(id), " "))
}
