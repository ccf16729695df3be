package domain

// RecordType represents the direction of a stock movement record.
type RecordType string

const (
	RecordTypeInbound  RecordType = "inbound"
	RecordTypeOutbound RecordType = "outbound"
	RecordTypeTransfer RecordType = "transfer"
)

func (t RecordType) String() string { return string(t) }

func (t RecordType) IsValid() bool {
	switch t {
	case RecordTypeInbound, RecordTypeOutbound, RecordTypeTransfer:
		return true
	}
	return false
}
