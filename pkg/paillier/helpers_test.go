package paillier_test

import (
	"testing"

	"github.com/cronokirby/saferith"
	"github.com/stretchr/testify/require"

	"github.com/Tiehuis/libhcs-go/pkg/drbg"
	"github.com/Tiehuis/libhcs-go/pkg/paillier"
	"github.com/Tiehuis/libhcs-go/pkg/sharing"
	"github.com/Tiehuis/libhcs-go/pkg/threshold"
)

// testSetup bundles a freshly dealt threshold key: pk is public, and
// servers[i] holds the share for 0-based identity i. Callers decrypt by
// partially decrypting with any w of the servers and combining.
type testSetup struct {
	pk      *paillier.PublicKey
	servers []*threshold.AuthServer
}

func newTestSetup(t *testing.T, bits, w, l int) *testSetup {
	t.Helper()

	pk, sk, err := paillier.KeyGen(bits, w, l)
	require.NoError(t, err)

	rs, err := drbg.New()
	require.NoError(t, err)

	poly := sharing.Build(rs, sk)
	shares := poly.EvaluateAll(nil, l)
	poly.Destroy()
	sk.Destroy()

	servers := make([]*threshold.AuthServer, l)
	for i := 0; i < l; i++ {
		servers[i] = threshold.NewAuthServer()
		servers[i].Set(shares[i], i)
	}

	return &testSetup{pk: pk, servers: servers}
}

// decrypt combines partial decryptions from the given 0-based server
// indices.
func (s *testSetup) decrypt(t *testing.T, ct *paillier.Ciphertext, indices ...int) *saferith.Nat {
	t.Helper()

	shares := make([]*threshold.PartialDecryption, len(indices))
	for k, i := range indices {
		shares[k] = s.servers[i].PartialDecrypt(s.pk, ct)
	}

	plaintext, err := threshold.Combine(s.pk, shares)
	require.NoError(t, err)
	return plaintext
}
