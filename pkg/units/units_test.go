package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTeslaToAtomic(t *testing.T) {
	// The atomic unit of magnetic flux density is hbar/(e*a_0^2) ~ 2.3505e5 T.
	assert.InEpsilon(t, 4.2543821599459325e-07, TeslaToAtomic(0.100), 1e-12)
	assert.InEpsilon(t, 1.0635955399864830e-06, TeslaToAtomic(0.250), 1e-12)
	assert.Zero(t, TeslaToAtomic(0))
}

func TestFixedConversionFactors(t *testing.T) {
	assert.InEpsilon(t, 27.2114, HartreeToElectronvolt(1), 1e-12)
	assert.InEpsilon(t, 0.0529177249, AtomicLengthToNanometers(1), 1e-12)
}

func TestConversionsAreMutuallyInverse(t *testing.T) {
	values := []float64{1e-9, 0.003, 1, 27.2114, 147776.58, 1e12}

	for _, v := range values {
		assert.InEpsilon(t, v, ElectronvoltToHartree(HartreeToElectronvolt(v)), 1e-14)
		assert.InEpsilon(t, v, HartreeToElectronvolt(ElectronvoltToHartree(v)), 1e-14)
		assert.InEpsilon(t, v, NanometersToAtomicLength(AtomicLengthToNanometers(v)), 1e-14)
		assert.InEpsilon(t, v, AtomicLengthToNanometers(NanometersToAtomicLength(v)), 1e-14)
	}
}

func TestConversionsAreDeterministic(t *testing.T) {
	for i := 0; i < 3; i++ {
		assert.Equal(t, TeslaToAtomic(0.1), TeslaToAtomic(0.1))
		assert.Equal(t, HartreeToElectronvolt(0.002), HartreeToElectronvolt(0.002))
	}
}
