package tracker

import "fmt"

// Fields named by a ValidationError.
const (
	FieldStartEnd    = "start/end"
	FieldEnd         = "end"
	FieldDefaultTime = "defaultTime"
	FieldHourlyRate  = "hourlyRate"
	FieldHolidayDays = "holidayDays"
)

// ValidationError represents input that breaks a business rule. The store is
// left unchanged whenever one is returned.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}
