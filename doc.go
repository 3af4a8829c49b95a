// Package circuits provides the typed value encoding layer of a boolean
// circuit representation, as used by garbled-circuit style secure multi-party
// computation tooling.
//
// The layer defines two parallel domains and the bit-exact mapping between
// them:
//   - native-like values: bits, fixed-width unsigned integers and nested
//     homogeneous arrays thereof (the types.Value family)
//   - wire-level representations of the same shapes, with every leaf replaced
//     by a node handle identifying one boolean signal in a circuit under
//     construction (types.BinaryRepr)
//
// Circuit topology, gate construction and garbling cryptography live in
// surrounding subsystems; this module owns shape and encode/decode logic only.
package circuits

import (
	"github.com/blang/semver/v4"
)

// Version of the module
var Version = semver.MustParse("0.1.0")
