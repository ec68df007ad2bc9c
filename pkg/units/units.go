// Package units converts physical quantities between SI and atomic (Hartree)
// units. All simulation math runs in atomic units, where hbar, the electron
// mass, the elementary charge and the Bohr radius are each 1; SI values appear
// only at the configuration boundary and on plot axes.
package units

// Physical constants in SI units.
const (
	HbarSI             = 1.054571817e-34     // reduced Planck constant, J s
	ElementaryChargeSI = 1.602176634e-19     // elementary charge, C
	BohrRadiusSI       = 5.2917721090380e-11 // Bohr radius, m
)

// Atomic-unit reference values, fixed by convention.
const (
	Hbar       = 1.0
	Mass       = 1.0
	Charge     = 1.0
	BohrRadius = 1.0
	GFactor    = 2.0

	// BohrMagneton is e*hbar/(2m) in atomic units.
	BohrMagneton = Charge * Hbar / (2 * Mass)
)

const (
	electronvoltsPerHartree = 27.2114
	nanometersPerBohr       = 0.0529177249
)

// TeslaToAtomic converts a magnetic flux density from teslas to atomic units,
// hbar/(e*a_0^2).
func TeslaToAtomic(tesla float64) float64 {
	return tesla / (HbarSI / (ElementaryChargeSI * BohrRadiusSI * BohrRadiusSI))
}

// HartreeToElectronvolt converts an energy from hartrees to electronvolts.
func HartreeToElectronvolt(hartree float64) float64 {
	return hartree * electronvoltsPerHartree
}

// ElectronvoltToHartree is the inverse of HartreeToElectronvolt.
func ElectronvoltToHartree(ev float64) float64 {
	return ev / electronvoltsPerHartree
}

// AtomicLengthToNanometers converts a length from Bohr radii to nanometers.
func AtomicLengthToNanometers(au float64) float64 {
	return au * nanometersPerBohr
}

// NanometersToAtomicLength is the inverse of AtomicLengthToNanometers.
func NanometersToAtomicLength(nm float64) float64 {
	return nm / nanometersPerBohr
}
