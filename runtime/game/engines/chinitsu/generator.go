package chinitsu

import (
	"math/rand/v2"
	"sort"
	"sync"
)

// DefaultAttempts 拒绝采样的尝试上限
const DefaultAttempts = 500

// FallbackHand 采样失败时返回的固定听牌手牌（九莲宝灯，听 1-9）
var FallbackHand = Hand{1, 1, 1, 2, 3, 4, 5, 6, 7, 8, 9, 9, 9}

// HandOptions 出题约束，未设置的字段不参与判断，设置的字段全部满足才接受
type HandOptions struct {
	MinWaits   *int `json:"minWaits,omitempty"`
	MaxWaits   *int `json:"maxWaits,omitempty"`
	ExactWaits *int `json:"exactWaits,omitempty"`
}

// Waits 构造 HandOptions 字段用
func Waits(n int) *int {
	return &n
}

// Accepts 听牌数是否满足约束，没有听牌永远不接受
func (o HandOptions) Accepts(waitCount int) bool {
	if waitCount <= 0 {
		return false
	}
	if o.MinWaits != nil && waitCount < *o.MinWaits {
		return false
	}
	if o.MaxWaits != nil && waitCount > *o.MaxWaits {
		return false
	}
	if o.ExactWaits != nil && waitCount != *o.ExactWaits {
		return false
	}
	return true
}

// WaitsFunc 听牌计算函数，可以替换为带缓存的实现
type WaitsFunc func(Hand) []Tile

// Generator 随机出题器，rng 由互斥锁保护，可以在多个 goroutine 间共享
type Generator struct {
	mu       sync.Mutex
	rng      *rand.Rand
	attempts int
	waitsFn  WaitsFunc
}

// GeneratorOption 出题器配置选项
type GeneratorOption func(*Generator)

// WithRand 注入随机源，测试时传固定种子
func WithRand(rng *rand.Rand) GeneratorOption {
	return func(g *Generator) {
		g.rng = rng
	}
}

// WithSeed 使用固定种子的 PCG
func WithSeed(seed uint64) GeneratorOption {
	return func(g *Generator) {
		g.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

// WithAttempts 设置尝试上限，<=0 时使用默认值
func WithAttempts(n int) GeneratorOption {
	return func(g *Generator) {
		if n > 0 {
			g.attempts = n
		}
	}
}

// WithWaitsFunc 替换听牌计算
func WithWaitsFunc(fn WaitsFunc) GeneratorOption {
	return func(g *Generator) {
		if fn != nil {
			g.waitsFn = fn
		}
	}
}

// NewGenerator 不注入随机源时使用 math/rand/v2 的全局源（并发安全）
func NewGenerator(opts ...GeneratorOption) *Generator {
	g := &Generator{
		attempts: DefaultAttempts,
		waitsFn:  EnumerateWaits,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate 在尝试上限内随机抽 13 张直到满足约束
// 第二个返回值为 false 表示用尽次数，返回的是 FallbackHand
func (g *Generator) Generate(opts HandOptions) (Hand, bool) {
	pool := make(Hand, poolSize)
	for attempt := 0; attempt < g.attempts; attempt++ {
		fillPool(pool)
		g.shuffle(pool)

		hand := make(Hand, TenpaiSize)
		copy(hand, pool[:TenpaiSize])
		sort.Slice(hand, func(i, j int) bool { return hand[i] < hand[j] })

		if opts.Accepts(len(g.waitsFn(hand))) {
			return hand, true
		}
	}

	fallback := make(Hand, len(FallbackHand))
	copy(fallback, FallbackHand)
	return fallback, false
}

func (g *Generator) shuffle(pool Hand) {
	swap := func(i, j int) { pool[i], pool[j] = pool[j], pool[i] }
	if g.rng == nil {
		rand.Shuffle(len(pool), swap)
		return
	}
	g.mu.Lock()
	g.rng.Shuffle(len(pool), swap)
	g.mu.Unlock()
}

// fillPool 36 张：1-9 各 4 张
func fillPool(pool Hand) {
	for i := 0; i < poolSize; i++ {
		pool[i] = Tile(i/CopiesPerRank + 1)
	}
}

var defaultGenerator = NewGenerator()

// GenerateHand 使用全局随机源出题，满足不了约束时返回 FallbackHand
func GenerateHand(opts HandOptions) Hand {
	hand, _ := defaultGenerator.Generate(opts)
	return hand
}
