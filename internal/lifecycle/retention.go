package lifecycle

import (
	"time"

	"github.com/girmesh03/Task-Manager-V19/internal/domain"
)

const day = 24 * time.Hour

// retention maps each entity kind to the window, measured from deleted_at,
// after which tombstoned records become eligible for permanent removal.
// Root tenant and identity records keep long windows; ephemeral records
// expire fast.
var retention = map[domain.Kind]time.Duration{
	domain.KindOrganization: 365 * day,
	domain.KindDepartment:   365 * day,
	domain.KindUser:         365 * day,
	domain.KindTask:         180 * day,
	domain.KindTaskActivity: 180 * day,
	domain.KindTaskComment:  180 * day,
	domain.KindMaterial:     180 * day,
	domain.KindVendor:       365 * day,
	domain.KindAttachment:   90 * day,
	domain.KindNotification: 30 * day,
}

// Retention returns the purge window for a kind.
func Retention(kind domain.Kind) time.Duration {
	return retention[kind]
}
