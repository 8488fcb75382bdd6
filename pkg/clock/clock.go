// Package clock abstrae la fuente de tiempo para poder fijarla en tests:
// los timestamps de los fallos y de los registros salen de aquí, no de
// llamadas directas a time.Now dispersas por el código.
package clock

import "time"

// Clock provee el instante actual.
type Clock interface {
	Now() time.Time
}

// System reloj del sistema.
type System struct{}

func (System) Now() time.Time { return time.Now() }

// Fixed reloj congelado en un instante (para tests).
type Fixed struct {
	Instant time.Time
}

func (f Fixed) Now() time.Time { return f.Instant }
