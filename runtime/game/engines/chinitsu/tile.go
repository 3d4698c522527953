package chinitsu

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Tile 单一花色的数牌，取值 1-9
type Tile int

const (
	MinRank       Tile = 1
	MaxRank       Tile = 9
	RankCount          = 9
	CopiesPerRank      = 4  // 每种牌四张
	TenpaiSize         = 13 // 听牌手牌张数
	WinningSize        = 14 // 和牌手牌张数
	setsNeeded         = 4  // 一雀头 + 四面子
	poolSize           = RankCount * CopiesPerRank
)

var (
	ErrInvalidTile   = errors.New("非法牌面，只允许 1-9")
	ErrTooManyCopies = errors.New("同一种牌超过 4 张")
)

func (t Tile) Valid() bool {
	return t >= MinRank && t <= MaxRank
}

// Hand 手牌，顺序无关
type Hand []Tile

// CountVector 计数向量，下标 i 表示点数 i+1 的张数
type CountVector [RankCount]uint8

// CountsOf 手牌转计数向量，出现 1-9 以外的点数时返回 false
// 单种计数封顶在 CopiesPerRank+1，超长输入不会溢出回合法范围
func CountsOf(hand Hand) (CountVector, bool) {
	var c CountVector
	for _, t := range hand {
		if !t.Valid() {
			return c, false
		}
		if c[t-1] <= CopiesPerRank {
			c[t-1]++
		}
	}
	return c, true
}

// withinLimit 每种牌不超过 4 张
func (c *CountVector) withinLimit() bool {
	for i := 0; i < RankCount; i++ {
		if c[i] > CopiesPerRank {
			return false
		}
	}
	return true
}

func (c CountVector) Total() int {
	n := 0
	for _, v := range c {
		n += int(v)
	}
	return n
}

// Tiles 按点数升序展开
func (c CountVector) Tiles() Hand {
	out := make(Hand, 0, c.Total())
	for i := 0; i < RankCount; i++ {
		for k := uint8(0); k < c[i]; k++ {
			out = append(out, Tile(i+1))
		}
	}
	return out
}

// Key 缓存 key，与手牌顺序无关
func (c CountVector) Key() string {
	var b [RankCount]byte
	for i := 0; i < RankCount; i++ {
		b[i] = '0' + c[i]
	}
	return string(b[:])
}

// Sorted 返回升序副本
func (h Hand) Sorted() Hand {
	out := make(Hand, len(h))
	copy(out, h)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (h Hand) String() string {
	var sb strings.Builder
	sb.Grow(len(h))
	for _, t := range h {
		sb.WriteByte('0' + byte(t))
	}
	return sb.String()
}

// Ints 转成 []int，方便 JSON 和日志输出
func (h Hand) Ints() []int {
	out := make([]int, len(h))
	for i, t := range h {
		out[i] = int(t)
	}
	return out
}

// HandFromInts 由整数切片构造手牌，校验点数范围和张数上限
func HandFromInts(ranks []int) (Hand, error) {
	h := make(Hand, 0, len(ranks))
	for _, r := range ranks {
		if r < int(MinRank) || r > int(MaxRank) {
			return nil, fmt.Errorf("%w: %d", ErrInvalidTile, r)
		}
		h = append(h, Tile(r))
	}
	c, _ := CountsOf(h)
	if !c.withinLimit() {
		return nil, fmt.Errorf("%w: %v", ErrTooManyCopies, ranks)
	}
	return h, nil
}

// ParseHand 解析紧凑写法，如 "1112345678999" 或 "111 234 567 8999s"
// 空格、逗号、横线忽略，末尾可带 m/p/s 花色字母（单一花色，仅做兼容）
func ParseHand(s string) (Hand, error) {
	raw := strings.TrimSpace(s)
	if n := len(raw); n > 0 {
		switch raw[n-1] {
		case 'm', 'p', 's', 'M', 'P', 'S':
			raw = raw[:n-1]
		}
	}

	h := make(Hand, 0, len(raw))
	for _, r := range raw {
		switch {
		case r == ' ' || r == ',' || r == '-' || r == '\t':
			continue
		case r >= '1' && r <= '9':
			h = append(h, Tile(r-'0'))
		default:
			return nil, fmt.Errorf("%w: %q", ErrInvalidTile, s)
		}
	}

	c, _ := CountsOf(h)
	if !c.withinLimit() {
		return nil, fmt.Errorf("%w: %q", ErrTooManyCopies, s)
	}
	return h, nil
}
