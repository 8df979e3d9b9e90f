package protocols

import "time"

type Clock interface {
	Now() time.Time
}
