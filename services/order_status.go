package services

// สถานะของ order เป็น closed set; เปลี่ยนได้ตามตารางข้างล่างเท่านั้น
const (
	StatusNew       = "new"
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusPreparing = "preparing"
	StatusReady     = "ready"
	StatusServed    = "served"
	StatusPaid      = "paid"
	StatusCancelled = "cancelled"
	StatusVoided    = "voided"
)

// ลำดับ canonical: new < pending < confirmed < preparing < ready < served < paid
var statusRank = map[string]int{
	StatusNew:       0,
	StatusPending:   1,
	StatusConfirmed: 2,
	StatusPreparing: 3,
	StatusReady:     4,
	StatusServed:    5,
	StatusPaid:      6,
}

var terminalStatus = map[string]bool{
	StatusPaid:      true,
	StatusCancelled: true,
	StatusVoided:    true,
}

func KnownStatus(s string) bool {
	if _, ok := statusRank[s]; ok {
		return true
	}
	return s == StatusCancelled || s == StatusVoided
}

func IsTerminal(s string) bool { return terminalStatus[s] }

// CanTransition: เดินหน้าตาม canonical เท่านั้น (ข้ามขั้นได้)
// cancelled/voided ออกได้จากทุกสถานะที่ยังไม่ terminal; ออกจาก terminal ไม่ได้เลย
func CanTransition(from, to string) bool {
	if !KnownStatus(from) || !KnownStatus(to) {
		return false
	}
	if IsTerminal(from) {
		return false
	}
	if to == StatusCancelled || to == StatusVoided {
		return true
	}
	return statusRank[to] > statusRank[from]
}

// Lane ของ KDS ตามสถานะปัจจุบัน; "" = ไม่อยู่ lane ไหน
func LaneFor(status string) string {
	switch status {
	case StatusNew, StatusPending, StatusConfirmed:
		return "queued"
	case StatusPreparing:
		return "preparing"
	case StatusReady:
		return "ready"
	default:
		return ""
	}
}
