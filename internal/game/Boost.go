package game

// BoostGauge receives the stamina fraction in [0, 1] whenever it changes.
type BoostGauge interface {
	SetBoost(fraction float64)
}

// BoostStamina is a draining/regenerating resource that multiplies movement
// speed while active. Draining and regeneration never happen in the same tick.
type BoostStamina struct {
	stamina    float64
	max        float64
	factor     float64
	active     bool
	canTrigger bool
	requested  bool
	baseSpeed  float64
	gauge      BoostGauge
	published  float64
}

func NewBoostStamina(max, factor float64, gauge BoostGauge) *BoostStamina {
	if !(max > 0) {
		max = DefaultMaxBoost
	}
	if !(factor > 0) {
		factor = DefaultBoostFactor
	}
	b := &BoostStamina{
		stamina:    max,
		max:        max,
		factor:     factor,
		canTrigger: true,
		published:  -1,
	}
	b.SetGauge(gauge)
	return b
}

func (b *BoostStamina) SetGauge(gauge BoostGauge) {
	b.gauge = gauge
	b.published = -1
	b.publish()
}

// Request asks for a boost on the next tick. It is refused when no stamina is
// left.
func (b *BoostStamina) Request() bool {
	if b.stamina <= 0 {
		return false
	}
	b.requested = true
	return true
}

// Tick advances the resource by dt and returns the speed the entity should
// move at. The speed captured on activation is handed back unchanged on
// deactivation.
func (b *BoostStamina) Tick(dt, speed float64) float64 {
	if dt < 0 {
		dt = 0
	}

	if b.requested && b.canTrigger && !b.active && b.stamina > 0 {
		b.baseSpeed = speed
		speed *= b.factor
		b.active = true
		b.canTrigger = false
	}
	b.requested = false

	if b.active {
		b.stamina -= dt
		if b.stamina <= 0 {
			b.stamina = 0
			b.active = false
			speed = b.baseSpeed
			b.canTrigger = true
		}
	} else if b.stamina < b.max {
		b.stamina = min(b.max, b.stamina+dt)
	}

	b.publish()
	return speed
}

func (b *BoostStamina) Stamina() float64 {
	return b.stamina
}

func (b *BoostStamina) Max() float64 {
	return b.max
}

func (b *BoostStamina) Factor() float64 {
	return b.factor
}

func (b *BoostStamina) Active() bool {
	return b.active
}

func (b *BoostStamina) Fraction() float64 {
	return clamp(b.stamina/b.max, 0, 1)
}

func (b *BoostStamina) publish() {
	if b.gauge == nil {
		return
	}
	f := b.Fraction()
	if f == b.published {
		return
	}
	b.published = f
	b.gauge.SetBoost(f)
}
