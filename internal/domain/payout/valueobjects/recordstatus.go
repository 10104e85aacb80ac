package valueobjects

// RecordStatus represents the processing state of an earning record
type RecordStatus string

const (
	// RecordStatusPending means the underlying charge has not cleared yet
	RecordStatusPending RecordStatus = "pending"
	// RecordStatusSucceeded means the earning is confirmed and payable
	RecordStatusSucceeded RecordStatus = "succeeded"
	// RecordStatusRefunded means the earning was reversed
	RecordStatusRefunded RecordStatus = "refunded"
)

// String returns the string representation of the status
func (s RecordStatus) String() string {
	return string(s)
}

// IsPayable reports whether the record counts toward an agency balance
func (s RecordStatus) IsPayable() bool {
	return s == RecordStatusSucceeded
}
