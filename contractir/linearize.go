package contractir

import "fmt"

// c3Linearize computes the C3 merge of c's direct base list, the same
// linearization algorithm Solidity uses for multiple inheritance, base-first
// (most general ancestor first, c itself last).
func c3Linearize(c *Contract) []*Contract {
	if len(c.directBases) == 0 {
		return []*Contract{c}
	}

	var sequences [][]*Contract
	for _, base := range c.directBases {
		sequences = append(sequences, c3Linearize(base))
	}
	sequences = append(sequences, append([]*Contract{}, c.directBases...))

	merged, err := c3Merge(sequences)
	if err != nil {
		panic(fmt.Sprintf("contract %q: %v", c.name, err))
	}
	return append(merged, c)
}

func c3Merge(sequences [][]*Contract) ([]*Contract, error) {
	var result []*Contract
	for {
		sequences = removeEmpty(sequences)
		if len(sequences) == 0 {
			return result, nil
		}
		var head *Contract
		for _, seq := range sequences {
			candidate := seq[0]
			if !appearsInTail(candidate, sequences) {
				head = candidate
				break
			}
		}
		if head == nil {
			return nil, fmt.Errorf("inconsistent base contract linearization")
		}
		result = append(result, head)
		for i, seq := range sequences {
			sequences[i] = removeFirstOccurrence(seq, head)
		}
	}
}

func removeEmpty(seqs [][]*Contract) [][]*Contract {
	var out [][]*Contract
	for _, s := range seqs {
		if len(s) > 0 {
			out = append(out, s)
		}
	}
	return out
}

func appearsInTail(c *Contract, seqs [][]*Contract) bool {
	for _, seq := range seqs {
		for _, other := range seq[1:] {
			if other == c {
				return true
			}
		}
	}
	return false
}

func removeFirstOccurrence(seq []*Contract, c *Contract) []*Contract {
	out := make([]*Contract, 0, len(seq))
	for _, other := range seq {
		if other == c {
			continue
		}
		out = append(out, other)
	}
	return out
}
