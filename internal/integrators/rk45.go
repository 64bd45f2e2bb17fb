package integrators

import (
	"context"
	"math"

	"github.com/san-kum/predprey/internal/dynamo"
)

// Dormand-Prince coefficients (RK45)
var (
	a2 = 1.0 / 5.0
	a3 = 3.0 / 10.0
	a4 = 4.0 / 5.0
	a5 = 8.0 / 9.0

	b21 = 1.0 / 5.0
	b31 = 3.0 / 40.0
	b32 = 9.0 / 40.0
	b41 = 44.0 / 45.0
	b42 = -56.0 / 15.0
	b43 = 32.0 / 9.0
	b51 = 19372.0 / 6561.0
	b52 = -25360.0 / 2187.0
	b53 = 64448.0 / 6561.0
	b54 = -212.0 / 729.0
	b61 = 9017.0 / 3168.0
	b62 = -355.0 / 33.0
	b63 = 46732.0 / 5247.0
	b64 = 49.0 / 176.0
	b65 = -5103.0 / 18656.0

	c1 = 35.0 / 384.0
	c3 = 500.0 / 1113.0
	c4 = 125.0 / 192.0
	c5 = -2187.0 / 6784.0
	c6 = 11.0 / 84.0

	dc1 = c1 - 5179.0/57600.0
	dc3 = c3 - 7571.0/16695.0
	dc4 = c4 - 393.0/640.0
	dc5 = c5 - -92097.0/339200.0
	dc6 = c6 - 187.0/2100.0
	dc7 = -1.0 / 40.0
)

// Quartic continuous extension of the Dormand-Prince pair. Row i holds the
// coefficients of sigma, sigma^2, sigma^3, sigma^4 for stage i.
var dense = [7][4]float64{
	{1, -8048581381.0 / 2820520608.0, 8663915743.0 / 2820520608.0, -12715105075.0 / 11282082432.0},
	{0, 0, 0, 0},
	{0, 131558114200.0 / 32700410799.0, -68118460800.0 / 10900136933.0, 87487479700.0 / 32700410799.0},
	{0, -1754552775.0 / 470086768.0, 14199869525.0 / 1410260304.0, -10690763975.0 / 1880347072.0},
	{0, 127303824393.0 / 49829197408.0, -318862633887.0 / 49829197408.0, 701980252875.0 / 199316789632.0},
	{0, -282668133.0 / 205662961.0, 2019193451.0 / 616988883.0, -1453857185.0 / 822651844.0},
	{0, 40617522.0 / 29380423.0, -110615467.0 / 29380423.0, 69997945.0 / 29380423.0},
}

// RK45 is an adaptive Dormand-Prince 5(4) solver with local error control
// and dense output. Zero-valued tolerances fall back to the defaults.
type RK45 struct {
	RTol      float64
	ATol      float64
	MaxSteps  int
	MaxStep   float64
	FirstStep float64

	safety   float64
	minScale float64
	maxScale float64
}

func NewRK45() *RK45 {
	return &RK45{
		RTol:     1e-3,
		ATol:     1e-6,
		MaxSteps: 1_000_000,
		safety:   0.9,
		minScale: 0.2,
		maxScale: 10.0,
	}
}

// stages holds k1..k7 of one step; k7 is the derivative at the new point.
type stages [7]dynamo.State

// Step performs a single fixed Dormand-Prince step of size dt.
func (r *RK45) Step(dyn dynamo.System, x dynamo.State, t, dt float64) dynamo.State {
	k1 := dyn.Derive(x, t)
	xNew, _, _ := r.attempt(dyn, x, k1, t, dt)
	return xNew
}

// attempt runs the seven stages from (t, x) with k1 already known and returns
// the fifth-order solution, the stages and the local error estimate.
func (r *RK45) attempt(dyn dynamo.System, x, k1 dynamo.State, t, dt float64) (dynamo.State, *stages, dynamo.State) {
	n := len(x)
	k := &stages{}
	k[0] = k1

	x2 := make(dynamo.State, n)
	for i := 0; i < n; i++ {
		x2[i] = x[i] + dt*b21*k1[i]
	}
	k[1] = dyn.Derive(x2, t+a2*dt)

	x3 := make(dynamo.State, n)
	for i := 0; i < n; i++ {
		x3[i] = x[i] + dt*(b31*k[0][i]+b32*k[1][i])
	}
	k[2] = dyn.Derive(x3, t+a3*dt)

	x4 := make(dynamo.State, n)
	for i := 0; i < n; i++ {
		x4[i] = x[i] + dt*(b41*k[0][i]+b42*k[1][i]+b43*k[2][i])
	}
	k[3] = dyn.Derive(x4, t+a4*dt)

	x5 := make(dynamo.State, n)
	for i := 0; i < n; i++ {
		x5[i] = x[i] + dt*(b51*k[0][i]+b52*k[1][i]+b53*k[2][i]+b54*k[3][i])
	}
	k[4] = dyn.Derive(x5, t+a5*dt)

	x6 := make(dynamo.State, n)
	for i := 0; i < n; i++ {
		x6[i] = x[i] + dt*(b61*k[0][i]+b62*k[1][i]+b63*k[2][i]+b64*k[3][i]+b65*k[4][i])
	}
	k[5] = dyn.Derive(x6, t+dt)

	xNew := make(dynamo.State, n)
	for i := 0; i < n; i++ {
		xNew[i] = x[i] + dt*(c1*k[0][i]+c3*k[2][i]+c4*k[3][i]+c5*k[4][i]+c6*k[5][i])
	}
	k[6] = dyn.Derive(xNew, t+dt)

	errEst := make(dynamo.State, n)
	for i := 0; i < n; i++ {
		errEst[i] = dt * (dc1*k[0][i] + dc3*k[2][i] + dc4*k[3][i] + dc5*k[4][i] + dc6*k[5][i] + dc7*k[6][i])
	}

	return xNew, k, errEst
}

// errorNorm is the RMS of the error estimate scaled by the mixed tolerance.
func (r *RK45) errorNorm(errEst, x, xNew dynamo.State) float64 {
	rtol, atol := r.tolerances()
	sum := 0.0
	for i := range errEst {
		scale := atol + math.Max(math.Abs(x[i]), math.Abs(xNew[i]))*rtol
		e := errEst[i] / scale
		sum += e * e
	}
	return math.Sqrt(sum / float64(len(errEst)))
}

func (r *RK45) tolerances() (float64, float64) {
	rtol, atol := r.RTol, r.ATol
	if rtol <= 0 {
		rtol = 1e-3
	}
	if atol <= 0 {
		atol = 1e-6
	}
	return rtol, atol
}

func (r *RK45) maxSteps() int {
	if r.MaxSteps <= 0 {
		return 1_000_000
	}
	return r.MaxSteps
}

func (r *RK45) maxStep() float64 {
	if r.MaxStep <= 0 {
		return math.Inf(1)
	}
	return r.MaxStep
}

// interpolate evaluates the continuous extension at sigma in [0, 1] of a step
// of size dt taken from x.
func interpolate(x dynamo.State, k *stages, dt, sigma float64) dynamo.State {
	p := [4]float64{sigma, sigma * sigma, sigma * sigma * sigma, sigma * sigma * sigma * sigma}
	out := make(dynamo.State, len(x))
	for i := range x {
		acc := 0.0
		for s := 0; s < len(k); s++ {
			if s == 1 {
				continue
			}
			w := dense[s][0]*p[0] + dense[s][1]*p[1] + dense[s][2]*p[2] + dense[s][3]*p[3]
			acc += k[s][i] * w
		}
		out[i] = x[i] + dt*acc
	}
	return out
}

// initialStep picks a first step from the scale of the solution and of its
// first two derivatives.
func (r *RK45) initialStep(dyn dynamo.System, t0 float64, x0, f0 dynamo.State, span float64, stats *dynamo.Stats) float64 {
	rtol, atol := r.tolerances()
	n := len(x0)

	rms := func(v func(i int) float64) float64 {
		sum := 0.0
		for i := 0; i < n; i++ {
			e := v(i) / (atol + math.Abs(x0[i])*rtol)
			sum += e * e
		}
		return math.Sqrt(sum / float64(n))
	}

	d0 := rms(func(i int) float64 { return x0[i] })
	d1 := rms(func(i int) float64 { return f0[i] })

	h0 := 1e-6
	if d0 >= 1e-5 && d1 >= 1e-5 {
		h0 = 0.01 * d0 / d1
	}
	h0 = math.Min(h0, span)

	x1 := make(dynamo.State, n)
	for i := 0; i < n; i++ {
		x1[i] = x0[i] + h0*f0[i]
	}
	f1 := dyn.Derive(x1, t0+h0)
	stats.Evaluations++

	d2 := rms(func(i int) float64 { return f1[i] - f0[i] }) / h0

	var h1 float64
	if d1 <= 1e-15 && d2 <= 1e-15 {
		h1 = math.Max(1e-6, h0*1e-3)
	} else {
		h1 = math.Pow(0.01/math.Max(d1, d2), 1.0/5.0)
	}

	return math.Min(math.Min(100*h0, h1), span)
}

// Integrate solves dyn from x0 at times[0] to the last entry of times and
// samples the solution at every requested time.
func (r *RK45) Integrate(ctx context.Context, dyn dynamo.System, x0 dynamo.State, times []float64) ([]dynamo.State, dynamo.Stats, error) {
	var stats dynamo.Stats
	out := make([]dynamo.State, len(times))
	if len(times) == 0 {
		return out, stats, nil
	}

	t, tEnd := times[0], times[len(times)-1]
	x := x0.Clone()
	out[0] = x.Clone()
	if len(times) == 1 {
		return out, stats, nil
	}

	fail := func(reason error) ([]dynamo.State, dynamo.Stats, error) {
		return nil, stats, &dynamo.SimulationError{Step: stats.Steps, Time: t, State: x.Clone(), Reason: reason}
	}

	if !x.IsValid() {
		return fail(dynamo.ErrInvalidState)
	}

	f := dyn.Derive(x, t)
	stats.Evaluations++
	if !f.IsValid() {
		return fail(dynamo.ErrInvalidState)
	}

	h := r.FirstStep
	if h <= 0 {
		h = r.initialStep(dyn, t, x, f, tEnd-t, &stats)
	}
	maxStep := r.maxStep()

	next := 1
	for next < len(times) {
		select {
		case <-ctx.Done():
			return nil, stats, ctx.Err()
		default:
		}

		if stats.Steps >= r.maxSteps() {
			return fail(dynamo.ErrTooManySteps)
		}

		minStep := 10 * math.Abs(math.Nextafter(t, math.Inf(1))-t)
		if h > maxStep {
			h = maxStep
		} else if h < minStep {
			h = minStep
		}

		var (
			tNew    float64
			xNew    dynamo.State
			k       *stages
			hNext   float64
			rejects bool
		)
		for {
			if h < minStep {
				return fail(dynamo.ErrStepTooSmall)
			}

			tNew = t + h
			if tNew > tEnd {
				tNew = tEnd
			}
			h = tNew - t

			var errEst dynamo.State
			xNew, k, errEst = r.attempt(dyn, x, f, t, h)
			stats.Evaluations += 6

			errNorm := r.errorNorm(errEst, x, xNew)
			if math.IsNaN(errNorm) || math.IsInf(errNorm, 0) {
				// Non-finite stages: shrink hard and retry.
				h *= r.minScale
				rejects = true
				stats.Rejected++
				continue
			}

			if errNorm < 1 {
				scale := r.maxScale
				if errNorm > 0 {
					scale = math.Min(r.maxScale, r.safety*math.Pow(errNorm, -0.2))
				}
				if rejects {
					scale = math.Min(1, scale)
				}
				hNext = h * scale
				break
			}

			h *= math.Max(r.minScale, r.safety*math.Pow(errNorm, -0.2))
			rejects = true
			stats.Rejected++
		}

		if !xNew.IsValid() {
			return fail(dynamo.ErrInvalidState)
		}

		for next < len(times) && times[next] <= tNew {
			if times[next] == tNew {
				out[next] = xNew.Clone()
			} else {
				out[next] = interpolate(x, k, h, (times[next]-t)/h)
			}
			next++
		}

		stats.Steps++
		t, x, f, h = tNew, xNew, k[6], hNext
	}

	return out, stats, nil
}
