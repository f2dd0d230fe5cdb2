// Package fixture assembles the structured circuit-input records consumed by
// the external proving toolchain. Every field element is emitted as a
// decimal string; field width, pairing order and padding policy follow the
// merkle package, and any deviation breaks proof verification downstream.
package fixture

import (
	"encoding/json"
	"fmt"
	"math/big"
	"os"
	"strconv"

	"github.com/zkfl/circuit-fixtures/field"
	"github.com/zkfl/circuit-fixtures/hash"
	"github.com/zkfl/circuit-fixtures/merkle"
)

// BalanceFixture is the input record of the balance-commitment circuit: a
// Merkle commitment over a binary dataset plus one inclusion proof per leaf.
// ClientID, Root, NPublic, C0 and C1 are public; the rest is private
// witness.
type BalanceFixture struct {
	ClientID    string     `json:"client_id"`
	Root        string     `json:"root"`
	NPublic     string     `json:"N_public"`
	C0          string     `json:"c0"`
	C1          string     `json:"c1"`
	Bits        []string   `json:"bits"`
	Siblings    [][]string `json:"siblings"`
	PathIndices [][]string `json:"pathIndices"`
}

// NewBalanceFixture commits to the given bit sequence and collects a
// membership proof for every leaf.
func NewBalanceFixture(hFn hash.Function, clientID int, bits []int) (*BalanceFixture, error) {
	leaves := make([]*big.Int, len(bits))
	for i, b := range bits {
		if b != 0 && b != 1 {
			return nil, fmt.Errorf("fixture: bit %d is %d, want 0 or 1", i, b)
		}
		leaves[i] = big.NewInt(int64(b))
	}
	tree, err := merkle.BuildTree(hFn, leaves)
	if err != nil {
		return nil, err
	}

	f := &BalanceFixture{
		ClientID:    strconv.Itoa(clientID),
		Root:        field.String(tree.Root()),
		NPublic:     strconv.Itoa(len(bits)),
		Bits:        make([]string, len(bits)),
		Siblings:    make([][]string, len(bits)),
		PathIndices: make([][]string, len(bits)),
	}
	zeros := 0
	for i, b := range bits {
		if b == 0 {
			zeros++
		}
		f.Bits[i] = strconv.Itoa(b)
		proof, err := tree.GenProof(i)
		if err != nil {
			return nil, err
		}
		f.Siblings[i], f.PathIndices[i] = encodeProof(proof)
	}
	f.C0 = strconv.Itoa(zeros)
	f.C1 = strconv.Itoa(len(bits) - zeros)
	return f, nil
}

// WriteFile serializes the fixture as indented JSON at the given path.
func (f *BalanceFixture) WriteFile(path string) error {
	return writeJSON(path, f)
}

func encodeProof(p *merkle.Proof) (siblings, pathIndices []string) {
	siblings = make([]string, len(p.Siblings))
	pathIndices = make([]string, len(p.PathIndices))
	for k := range p.Siblings {
		siblings[k] = field.String(p.Siblings[k])
		pathIndices[k] = strconv.Itoa(p.PathIndices[k])
	}
	return siblings, pathIndices
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
