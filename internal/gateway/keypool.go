package gateway

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
)

type Strategy string

const (
	StrategyRandom     Strategy = "random"
	StrategyRoundRobin Strategy = "round-robin"
)

// KeyPool hands out API credentials for each outgoing call.
type KeyPool struct {
	mu       sync.Mutex
	keys     []string
	strategy Strategy
	next     int
	intn     func(n int) int
}

// ParseKeys splits a comma separated key list, dropping blanks.
func ParseKeys(csv string) []string {
	keys := make([]string, 0)
	for _, k := range strings.Split(csv, ",") {
		k = strings.TrimSpace(k)
		if k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

func NewKeyPool(keys []string, strategy Strategy) (*KeyPool, error) {
	switch strategy {
	case "":
		strategy = StrategyRandom
	case StrategyRandom, StrategyRoundRobin:
	default:
		return nil, fmt.Errorf("unknown key strategy %q (expected %s or %s)", strategy, StrategyRandom, StrategyRoundRobin)
	}
	copied := make([]string, len(keys))
	copy(copied, keys)
	return &KeyPool{keys: copied, strategy: strategy, intn: rand.IntN}, nil
}

// SetRandSource replaces the random index source used by the random strategy.
func (p *KeyPool) SetRandSource(intn func(n int) int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.intn = intn
}

func (p *KeyPool) Len() int {
	return len(p.keys)
}

func (p *KeyPool) Next() (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.keys) == 0 {
		return "", ErrNoAPIKeys
	}
	if p.strategy == StrategyRoundRobin {
		k := p.keys[p.next%len(p.keys)]
		p.next++
		return k, nil
	}
	return p.keys[p.intn(len(p.keys))], nil
}
