package drill

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"chinitsu/core/domain/entity"
	"chinitsu/core/domain/vo"
	"chinitsu/runtime/game/engines/chinitsu"
	"chinitsu/runtime/quiz/application/service"

	"github.com/fatih/color"
	"github.com/spf13/cast"
)

const drillUserID = "drill"

var (
	tileColor  = color.New(color.FgHiCyan, color.Bold).SprintfFunc()
	rightColor = color.New(color.FgHiGreen).SprintfFunc()
	wrongColor = color.New(color.FgHiRed).SprintfFunc()
	hintColor  = color.New(color.FgHiYellow).SprintfFunc()
)

// ErrQuit 玩家输入 q 退出
var ErrQuit = errors.New("drill quit")

// Summary 一轮练习的结果
type Summary struct {
	Asked   int
	Correct int
	Score   int
}

// Drill 终端练习：出题、读答案、判分
type Drill struct {
	quiz       service.QuizService
	difficulty vo.Difficulty
	in         *bufio.Reader
	out        io.Writer
}

func New(quiz service.QuizService, difficulty vo.Difficulty, in io.Reader, out io.Writer) *Drill {
	return &Drill{
		quiz:       quiz,
		difficulty: difficulty,
		in:         bufio.NewReader(in),
		out:        out,
	}
}

// Run 连续出 count 道题，输入结束或 q 时提前返回
func (d *Drill) Run(ctx context.Context, count int) (*Summary, error) {
	summary := &Summary{}
	fmt.Fprintf(d.out, "清一色听牌练习：%s，共 %d 题。输入听牌点数（如 147 或 1 4 7），q 退出\n\n",
		d.difficulty.GetDisplayName(), count)

	for i := 0; i < count; i++ {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		result, err := d.round(ctx, i+1)
		if errors.Is(err, ErrQuit) || errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return summary, err
		}
		summary.Asked++
		summary.Score += result.Score
		if result.Correct && !result.TimedOut {
			summary.Correct++
		}
	}

	fmt.Fprintf(d.out, "\n共答 %d 题，答对 %d 题，得分 %d\n", summary.Asked, summary.Correct, summary.Score)
	return summary, nil
}

func (d *Drill) round(ctx context.Context, n int) (*entity.AnswerResult, error) {
	q, err := d.quiz.NewQuestion(ctx, &service.NewQuestionReq{UserID: drillUserID, Difficulty: d.difficulty})
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(d.out, "第 %d 题  %s  （限时 %v）\n", n, tileColor("%s", q.Hand), q.TimeLimit())

	answer, err := d.readAnswer()
	if err != nil {
		return nil, err
	}
	result, err := d.quiz.SubmitAnswer(ctx, &service.SubmitAnswerReq{
		UserID:     drillUserID,
		QuestionID: q.ID,
		Waits:      answer,
	})
	if err != nil {
		return nil, err
	}
	d.printResult(result)
	return result, nil
}

// readAnswer 读取一行答案，格式不对时重新输入
func (d *Drill) readAnswer() ([]int, error) {
	for {
		fmt.Fprint(d.out, "> ")
		line, err := d.in.ReadString('\n')
		if err != nil && line == "" {
			return nil, err
		}
		line = strings.TrimSpace(line)
		if strings.EqualFold(line, "q") {
			return nil, ErrQuit
		}
		answer, perr := ParseAnswer(line)
		if perr == nil && len(answer) > 0 && inRange(answer) {
			return answer, nil
		}
		fmt.Fprintln(d.out, hintColor("请输入 1-9 的点数"))
		if err != nil {
			return nil, err
		}
	}
}

func (d *Drill) printResult(r *entity.AnswerResult) {
	waits := chinitsu.Hand(r.Waits).String()
	switch {
	case r.Correct && r.TimedOut:
		fmt.Fprintln(d.out, hintColor("答对了，但已超时：听 %s", waits))
	case r.Correct:
		fmt.Fprintln(d.out, rightColor("正确！听 %s，有效进张 %d 枚，得分 %d", waits, r.Ukeire, r.Score))
	default:
		fmt.Fprintln(d.out, wrongColor("错误：正确答案 %s，漏 %s 多 %s",
			waits, chinitsu.Hand(r.Missed).String(), chinitsu.Hand(r.Extra).String()))
	}
	for _, e := range r.Explanations {
		fmt.Fprintf(d.out, "  %s -> %s\n", tileColor("%d", e.Tile), e.Text)
	}
	for _, t := range r.Unlocked {
		fmt.Fprintln(d.out, hintColor("解锁成就：%s（%s）", t.Name, t.Description))
	}
	fmt.Fprintln(d.out)
}

func inRange(answer []int) bool {
	for _, v := range answer {
		if v < int(chinitsu.MinRank) || v > int(chinitsu.MaxRank) {
			return false
		}
	}
	return true
}

// ParseAnswer "147"、"1 4 7"、"1,4,7" 都可以
func ParseAnswer(line string) ([]int, error) {
	fields := strings.FieldsFunc(line, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t'
	})
	answer := make([]int, 0, len(fields))
	for _, f := range fields {
		// 连写的多位数字按单个点数拆开
		digits := []string{f}
		if len(f) > 1 {
			digits = strings.Split(f, "")
		}
		for _, s := range digits {
			v, err := cast.ToIntE(s)
			if err != nil {
				return nil, fmt.Errorf("无法解析 %q: %w", s, err)
			}
			answer = append(answer, v)
		}
	}
	return answer, nil
}

// PrintAnalysis analyze 子命令的输出
func PrintAnalysis(out io.Writer, resp *service.AnalyzeResp) {
	fmt.Fprintf(out, "手牌 %s（%d 张）\n", tileColor("%s", resp.Hand), resp.Size)
	if resp.Size == chinitsu.TenpaiSize {
		if len(resp.Waits) == 0 {
			fmt.Fprintln(out, wrongColor("未听牌"))
			return
		}
		fmt.Fprintln(out, rightColor("听 %s，共 %d 面，有效进张 %d 枚", chinitsu.Hand(resp.Waits).String(), len(resp.Waits), resp.Ukeire))
		if resp.NineGates {
			fmt.Fprintln(out, hintColor("纯正九莲宝灯"))
		}
		for _, e := range resp.Explanations {
			fmt.Fprintf(out, "  %s -> %s\n", tileColor("%d", e.Tile), e.Text)
		}
		return
	}
	if !resp.Winning || resp.Decomposition == nil {
		fmt.Fprintln(out, wrongColor("不是和牌型"))
		return
	}
	fmt.Fprintln(out, rightColor("和牌：%s", resp.Decomposition.String()))
}
