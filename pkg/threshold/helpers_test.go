package threshold_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Tiehuis/libhcs-go/pkg/drbg"
	"github.com/Tiehuis/libhcs-go/pkg/paillier"
	"github.com/Tiehuis/libhcs-go/pkg/sharing"
	"github.com/Tiehuis/libhcs-go/pkg/threshold"
)

// testBits is deliberately small to keep the suite fast; production callers
// of paillier.KeyGen should use at least 2048.
const testBits = 256

type deployment struct {
	pk      *paillier.PublicKey
	servers []*threshold.AuthServer
}

func deal(t *testing.T, bits, w, l int) *deployment {
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

	return &deployment{pk: pk, servers: servers}
}

func (d *deployment) partials(ct *paillier.Ciphertext, indices ...int) []*threshold.PartialDecryption {
	out := make([]*threshold.PartialDecryption, len(indices))
	for k, i := range indices {
		out[k] = d.servers[i].PartialDecrypt(d.pk, ct)
	}
	return out
}

func mustRandomState(t *testing.T) *drbg.RandomState {
	t.Helper()
	rs, err := drbg.New()
	require.NoError(t, err)
	return rs
}
