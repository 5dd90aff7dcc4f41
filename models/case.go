package models

import (
	"encoding/json"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Case statuses. The status field is free text in storage, anything outside
// these three ranks last in listings.
const (
	StatusPending   = "Pending"
	StatusRunning   = "Running"
	StatusCompleted = "Completed"
)

// Case holds the structure for the all-cases collection in mongo. The
// document is flat; field names are the wire contract with the front-end.
type Case struct {
	ID            primitive.ObjectID `json:"_id" bson:"_id"`
	FileNo        string             `json:"fileNo" bson:"fileNo"`
	CaseNo        string             `json:"caseNo" bson:"caseNo"`
	Court         string             `json:"court" bson:"court"`
	FirstParty    string             `json:"firstParty" bson:"firstParty"`
	SecondParty   string             `json:"secondParty,omitempty" bson:"secondParty,omitempty"`
	Company       string             `json:"company,omitempty" bson:"company,omitempty"`
	AppointedBy   string             `json:"appointedBy,omitempty" bson:"appointedBy,omitempty"`
	CaseType      string             `json:"caseType,omitempty" bson:"caseType,omitempty"`
	PoliceStation string             `json:"policeStation,omitempty" bson:"policeStation,omitempty"`
	MobileNo      string             `json:"mobileNo,omitempty" bson:"mobileNo,omitempty"`
	LawSection    string             `json:"lawSection,omitempty" bson:"lawSection,omitempty"`
	Comments      string             `json:"comments,omitempty" bson:"comments,omitempty"`
	Date          DateTimes          `json:"date" bson:"date"`
	FixedFor      StringList         `json:"fixedFor,omitempty" bson:"fixedFor,omitempty"`
	Status        string             `json:"status" bson:"status"`
	StatusRank    int32              `json:"-" bson:"statusRank"`
	Description   string             `json:"description,omitempty" bson:"description,omitempty"`
	Laws          string             `json:"laws,omitempty" bson:"laws,omitempty"`
	Fees          *Fees              `json:"fees,omitempty" bson:"fees,omitempty"`
	CreatedAt     primitive.DateTime `json:"createdAt" bson:"createdAt"`
	UpdatedAt     primitive.DateTime `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

// Fees holds the payable/paid amounts attached to a case
type Fees struct {
	Payable float64 `json:"payable" bson:"payable"`
	Paid    float64 `json:"paid" bson:"paid"`
}

// CaseListResponse is the envelope shared by every case-listing endpoint
type CaseListResponse struct {
	Cases       []Case `json:"cases"`
	Total       int64  `json:"total"`
	TotalPages  int    `json:"totalPages"`
	CurrentPage int    `json:"currentPage"`
}

// StatusRank maps a status to its listing precedence: Pending before
// Running before Completed, with anything else last.
func StatusRank(status string) int32 {
	switch status {
	case StatusPending:
		return 1
	case StatusRunning:
		return 2
	case StatusCompleted:
		return 3
	default:
		return 4
	}
}

// DateTimes is the hearing-date sequence of a case. Documents written by the
// legacy backend hold a bare datetime until the first reschedule, so reads
// accept both shapes; writes always produce an array.
type DateTimes []primitive.DateTime

// ParseDate parses the date strings clients send: RFC3339 or date-only,
// the latter anchored at UTC midnight.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

// UnmarshalJSON accepts a single date string or an array of date strings
func (d *DateTimes) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case nil:
		*d = nil
		return nil
	case string:
		t, err := ParseDate(v)
		if err != nil {
			return err
		}
		*d = DateTimes{primitive.NewDateTimeFromTime(t)}
		return nil
	case []interface{}:
		out := make(DateTimes, 0, len(v))
		for _, e := range v {
			s, ok := e.(string)
			if !ok {
				return fmt.Errorf("date entries must be strings, got %T", e)
			}
			t, err := ParseDate(s)
			if err != nil {
				return err
			}
			out = append(out, primitive.NewDateTimeFromTime(t))
		}
		*d = out
		return nil
	default:
		return fmt.Errorf("date must be a string or array of strings, got %T", raw)
	}
}

// MarshalJSON always emits an array of RFC3339 timestamps
func (d DateTimes) MarshalJSON() ([]byte, error) {
	out := make([]string, len(d))
	for i, dt := range d {
		out[i] = dt.Time().UTC().Format(time.RFC3339Nano)
	}
	return json.Marshal(out)
}

// UnmarshalBSONValue migrates legacy scalar-shaped dates to a sequence on read
func (d *DateTimes) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	rv := bson.RawValue{Type: t, Value: data}
	switch t {
	case bsontype.Null, bsontype.Undefined:
		*d = nil
		return nil
	case bsontype.DateTime:
		*d = DateTimes{primitive.NewDateTimeFromTime(rv.Time())}
		return nil
	case bsontype.String:
		t, err := ParseDate(rv.StringValue())
		if err != nil {
			return err
		}
		*d = DateTimes{primitive.NewDateTimeFromTime(t)}
		return nil
	case bsontype.Array:
		var arr []primitive.DateTime
		if err := rv.Unmarshal(&arr); err != nil {
			return err
		}
		*d = arr
		return nil
	default:
		return fmt.Errorf("cannot decode %v into a date sequence", t)
	}
}

// MarshalBSONValue always stores an array
func (d DateTimes) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue([]primitive.DateTime(d))
}

// StringList is the fixedFor sequence of a case, kept index-aligned with the
// date sequence. Same scalar-or-array read tolerance as DateTimes.
type StringList []string

// UnmarshalJSON accepts a single string or an array of strings
func (s *StringList) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case nil:
		*s = nil
		return nil
	case string:
		*s = StringList{v}
		return nil
	case []interface{}:
		out := make(StringList, 0, len(v))
		for _, e := range v {
			str, ok := e.(string)
			if !ok {
				return fmt.Errorf("fixedFor entries must be strings, got %T", e)
			}
			out = append(out, str)
		}
		*s = out
		return nil
	default:
		return fmt.Errorf("fixedFor must be a string or array of strings, got %T", raw)
	}
}

// UnmarshalBSONValue migrates legacy scalar-shaped values to a sequence on read
func (s *StringList) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	rv := bson.RawValue{Type: t, Value: data}
	switch t {
	case bsontype.Null, bsontype.Undefined:
		*s = nil
		return nil
	case bsontype.String:
		*s = StringList{rv.StringValue()}
		return nil
	case bsontype.Array:
		var arr []string
		if err := rv.Unmarshal(&arr); err != nil {
			return err
		}
		*s = arr
		return nil
	default:
		return fmt.Errorf("cannot decode %v into a string sequence", t)
	}
}

// MarshalBSONValue always stores an array
func (s StringList) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue([]string(s))
}
