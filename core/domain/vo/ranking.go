package vo

// RankingType 称号枚举
// 数据库只存储累计得分，称号通过 GetRankingByScore 计算
type RankingType int

const (
	// RankingNovice 见习：0-299
	RankingNovice RankingType = iota
	// RankingGuard 雀士：300-599
	RankingGuard
	// RankingHero 豪杰：600-1199
	RankingHero
	// RankingSaint 雀圣：1200-1799
	RankingSaint
	// RankingSky 魂天：1800+
	RankingSky
)

// 称号分数范围常量
const (
	// 边界值（左闭右闭）
	RankingNoviceMax = 299  // 见习最大值
	RankingGuardMin  = 300  // 雀士最小值
	RankingGuardMax  = 599  // 雀士最大值
	RankingHeroMin   = 600  // 豪杰最小值
	RankingHeroMax   = 1199 // 豪杰最大值
	RankingSaintMin  = 1200 // 雀圣最小值
	RankingSaintMax  = 1799 // 雀圣最大值
	RankingSkyMin    = 1800 // 魂天最小值
)

// GetRankingByScore 根据累计得分获取称号
// 规则：
//   - 见习(novice): 0-299
//   - 雀士(guard): 300-599
//   - 豪杰(hero): 600-1199
//   - 雀圣(saint): 1200-1799
//   - 魂天(sky): 1800+
func GetRankingByScore(score int) RankingType {
	if score <= RankingNoviceMax {
		return RankingNovice
	}
	if score >= RankingGuardMin && score <= RankingGuardMax {
		return RankingGuard
	}
	if score >= RankingHeroMin && score <= RankingHeroMax {
		return RankingHero
	}
	if score >= RankingSaintMin && score <= RankingSaintMax {
		return RankingSaint
	}
	// score >= RankingSkyMin
	return RankingSky
}

// Next 下一档称号及所需分数，已是最高档时返回自身和 -1
func (r RankingType) Next() (RankingType, int) {
	switch r {
	case RankingNovice:
		return RankingGuard, RankingGuardMin
	case RankingGuard:
		return RankingHero, RankingHeroMin
	case RankingHero:
		return RankingSaint, RankingSaintMin
	case RankingSaint:
		return RankingSky, RankingSkyMin
	default:
		return r, -1
	}
}

// String 返回称号英文名（用于日志和接口）
func (r RankingType) String() string {
	switch r {
	case RankingNovice:
		return "novice"
	case RankingGuard:
		return "guard"
	case RankingHero:
		return "hero"
	case RankingSaint:
		return "saint"
	case RankingSky:
		return "sky"
	default:
		return "unknown"
	}
}

// GetDisplayName 返回称号显示名称（中文）
func (r RankingType) GetDisplayName() string {
	switch r {
	case RankingNovice:
		return "见习"
	case RankingGuard:
		return "雀士"
	case RankingHero:
		return "豪杰"
	case RankingSaint:
		return "雀圣"
	case RankingSky:
		return "魂天"
	default:
		return "未知"
	}
}
