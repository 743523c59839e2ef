// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-sshkeys.
//
// go-sshkeys is dual-licensed:
//
// 1. GNU Affero General Public License v3.0 (AGPL-3.0)
//    See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html
//
// 2. Commercial License
//    Contact licensing@automatethethings.com for commercial licensing options.

package keytype

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeremyhahn/go-sshkeys/pkg/wire"
)

func TestDSAPrivateRoundTrip(t *testing.T) {
	orig := &DSAPrivateParams{
		P: big.NewInt(283),
		Q: big.NewInt(47),
		G: big.NewInt(60),
		Y: big.NewInt(207),
		X: big.NewInt(15),
	}
	w := wire.NewWriter()
	require.NoError(t, orig.Marshal(w))

	c, err := Lookup(TagDSA)
	require.NoError(t, err)

	r := wire.NewReader(w.Bytes())
	parsed, err := c.ParsePrivate(r)
	require.NoError(t, err)
	require.NoError(t, r.Close())
	assert.True(t, orig.Fields().Equal(parsed.Fields()))

	pub := parsed.(*DSAPrivateParams).Public().(*DSAPublicParams)
	assert.Equal(t, []string{"p", "q", "g", "y"}, pub.Fields().Keys())
	assert.Zero(t, pub.Y.Cmp(orig.Y))
}

func TestDSAGenerate(t *testing.T) {
	c, err := Lookup(TagDSA)
	require.NoError(t, err)

	params, err := c.Generate(GenerateOptions{})
	require.NoError(t, err)
	priv := params.(*DSAPrivateParams)

	assert.Equal(t, 1024, priv.P.BitLen())
	assert.Equal(t, 160, priv.Q.BitLen())

	// q divides p-1 and y = g^x mod p.
	pm1 := new(big.Int).Sub(priv.P, big.NewInt(1))
	assert.Zero(t, new(big.Int).Mod(pm1, priv.Q).Sign())
	y := new(big.Int).Exp(priv.G, priv.X, priv.P)
	assert.Zero(t, y.Cmp(priv.Y))
}
