// Package merkle provides allowlist membership proofs over address sets.
package merkle

import (
	"bytes"
	"errors"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Tree construction errors.
var (
	ErrEmptySet = errors.New("address set is empty")
	ErrNotInSet = errors.New("address not in set")
)

// Leaf returns the leaf fingerprint for an address: keccak256 of its 20 bytes.
func Leaf(addr common.Address) common.Hash {
	return crypto.Keccak256Hash(addr.Bytes())
}

// hashPair combines two nodes with the bytewise-lesser hash first, so the
// combine is commutative and matches proofs generated off-chain with the
// same convention.
func hashPair(a, b common.Hash) common.Hash {
	if bytes.Compare(a[:], b[:]) > 0 {
		a, b = b, a
	}
	return crypto.Keccak256Hash(a[:], b[:])
}

// VerifyProof walks the proof sequence from the address leaf to a root and
// reports whether the result equals the expected root. Proof elements are
// ordered leaf-to-root. An empty proof is valid only for a single-address set
// whose root is the leaf itself.
func VerifyProof(proof []common.Hash, addr common.Address, root common.Hash) bool {
	node := Leaf(addr)
	for _, sibling := range proof {
		node = hashPair(node, sibling)
	}
	return node == root
}

// Tree is a sorted-pair Merkle tree over an address set, used to publish the
// allowlist commitment and to generate proofs for individual addresses.
type Tree struct {
	levels    [][]common.Hash
	leafIndex map[common.Hash]int
}

// NewTree builds a tree from a set of addresses. Odd nodes at any level are
// promoted unchanged to the next level.
func NewTree(addrs []common.Address) (*Tree, error) {
	if len(addrs) == 0 {
		return nil, ErrEmptySet
	}

	leaves := make([]common.Hash, len(addrs))
	leafIndex := make(map[common.Hash]int, len(addrs))
	for i, addr := range addrs {
		leaves[i] = Leaf(addr)
		if _, exists := leafIndex[leaves[i]]; !exists {
			leafIndex[leaves[i]] = i
		}
	}

	levels := [][]common.Hash{leaves}
	for level := leaves; len(level) > 1; {
		next := make([]common.Hash, 0, (len(level)+1)/2)
		for i := 0; i < len(level); i += 2 {
			if i+1 < len(level) {
				next = append(next, hashPair(level[i], level[i+1]))
			} else {
				next = append(next, level[i])
			}
		}
		levels = append(levels, next)
		level = next
	}

	return &Tree{levels: levels, leafIndex: leafIndex}, nil
}

// Root returns the tree's root commitment.
func (t *Tree) Root() common.Hash {
	top := t.levels[len(t.levels)-1]
	return top[0]
}

// ProofFor returns the sibling sequence proving the address's membership.
func (t *Tree) ProofFor(addr common.Address) ([]common.Hash, error) {
	idx, exists := t.leafIndex[Leaf(addr)]
	if !exists {
		return nil, ErrNotInSet
	}

	proof := make([]common.Hash, 0, len(t.levels)-1)
	for _, level := range t.levels[:len(t.levels)-1] {
		sibling := idx ^ 1
		if sibling < len(level) {
			proof = append(proof, level[sibling])
		}
		idx /= 2
	}
	return proof, nil
}

// Size returns the number of leaves in the tree.
func (t *Tree) Size() int {
	return len(t.levels[0])
}
