package math

import (
	"fmt"
	"math/big"
	"slices"
)

// Domain parameters for the supported named curves. Presets are validated when requested via DomainByName(...).
//
// See:
//   - https://www.secg.org/sec2-v2.pdf, Section 2.4.1 (secp256k1)
//   - https://nvlpubs.nist.gov/nistpubs/SpecialPublications/NIST.SP.800-186.pdf, Section 3.2.1.3 (P-256)

type preset struct {
	name    string
	p, a, b string
	gx, gy  string
	n       string
}

var presets = []preset{
	{
		// Textbook curve y² = x³ - 4 over F_257, the base point has order 43. For demonstrations and tests only.
		name: "toy257",
		p:    "257", a: "0", b: "-4",
		gx: "126", gy: "107",
		n: "43",
	},
	{
		name: "secp256k1",
		p:    "115792089237316195423570985008687907853269984665640564039457584007908834671663",
		a:    "0",
		b:    "7",
		gx:   "55066263022277343669578718895168534326250603453777594175500187360389116729240",
		gy:   "32670510020758816978083085130507043184471273380659243275938904335757337482424",
		n:    "115792089237316195423570985008687907852837564279074904382605163141518161494337",
	},
	{
		name: "P-256",
		p:    "115792089210356248762697446949407573530086143415290314195533631308867097853951",
		a:    "-3",
		b:    "41058363725152142129326129780047268409114441015993725554835256314039467401291",
		gx:   "48439561293906451759052585252797914202762949526041747995844080717082404635286",
		gy:   "36134250956749795798585127919587881956611106672985015071877198253568414405109",
		n:    "115792089210356248762697446949407573529996955224135760342422259061068512044369",
	},
}

// SupportedDomains returns the names of all preset domains.
func SupportedDomains() []string {
	names := make([]string, len(presets))
	for i, p := range presets {
		names[i] = p.name
	}
	return names
}

// DomainByName returns the validated preset domain with the given name.
func DomainByName(name string) (*Domain, error) {
	i := slices.IndexFunc(presets, func(p preset) bool { return p.name == name })
	if i < 0 {
		return nil, fmt.Errorf("unknown curve %q, supported curves: %v", name, SupportedDomains())
	}
	return presets[i].domain()
}

// MustDomainByName is DomainByName for static initialization and tests, it panics on unknown names.
func MustDomainByName(name string) *Domain {
	d, err := DomainByName(name)
	if err != nil {
		panic(err)
	}
	return d
}

func (p preset) domain() (*Domain, error) {
	curve := NewCurveFromStrings(p.p, p.a, p.b)
	n, ok := new(big.Int).SetString(p.n, 10)
	if !ok {
		panic("invalid order for preset " + p.name)
	}
	return newDomain(p.name, curve, NewPointFromStrings(p.gx, p.gy), n)
}
