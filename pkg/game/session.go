package game

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/decker502/ticketquiz/pkg/config"
)

// 固定步骤（关卡 i 的步骤为 StepName + i）
const (
	StepHome  = 0 // 首页
	StepStart = 1 // 开始页
	StepName  = 2 // 名字输入页
)

var (
	// ErrWrongStep 事件与当前步骤不匹配（例如在开始页提交名字）
	ErrWrongStep = errors.New("event not valid at current step")
	// ErrEmptyName 名字为空或只有空白
	ErrEmptyName = errors.New("player name is empty")
	// ErrStaleCheck 校验结果对应的关卡已不是当前关卡
	ErrStaleCheck = errors.New("answer check is stale")
	// ErrMismatch 至少一个答案错误（状态已更新错误标记）
	ErrMismatch = errors.New("answer mismatch")
)

// PlayerState 玩家状态
type PlayerState struct {
	Name              string // 显示名字
	CurrentLevelIndex int    // 已通过的关卡数（0..N），只增不减
	Score             int    // 保留字段，暂未使用
}

// ErrorFlags 两个答案输入框各自的错误标记
type ErrorFlags struct {
	Input1 bool
	Input2 bool
}

// Any 是否有任一错误
func (f ErrorFlags) Any() bool {
	return f.Input1 || f.Input2
}

// DraftField 可编辑的输入框
type DraftField int

const (
	FieldName DraftField = iota
	FieldAnswer1
	FieldAnswer2
)

// Session 一次游玩的全部内存状态
//
// Step 只增不减；图层 i 可见当且仅当 Step <= 图层阈值
// 所有状态转换都通过 Reduce 完成
type Session struct {
	Step       int
	Player     PlayerState
	NameDraft  string
	Answer1    string
	Answer2    string
	Errors     ErrorFlags
	ErrorUntil time.Time // 错误提示的自动消失时间，零值表示不显示

	LevelCount int // 关卡总数
}

// NewSession 创建新会话
func NewSession(levelCount int) Session {
	return Session{LevelCount: levelCount}
}

// Event 会话事件
type Event interface {
	eventName() string
}

// TapHome 点击首页热点
type TapHome struct{}

// TapStart 点击开始页热点
type TapStart struct{}

// SubmitName 提交名字
type SubmitName struct {
	Name string
}

// EditDraft 输入框内容变化
type EditDraft struct {
	Field DraftField
	Text  string
}

// AnswersChecked 后台校验完成
type AnswersChecked struct {
	Result AnswerResult
}

// Tick 时间推进（用于清除过期的错误提示）
type Tick struct{}

func (TapHome) eventName() string        { return "TapHome" }
func (TapStart) eventName() string       { return "TapStart" }
func (SubmitName) eventName() string     { return "SubmitName" }
func (EditDraft) eventName() string      { return "EditDraft" }
func (AnswersChecked) eventName() string { return "AnswersChecked" }
func (Tick) eventName() string           { return "Tick" }

// LevelStep 返回关卡 id（1 开始）对应的步骤
func LevelStep(levelID int) int {
	return StepName + levelID
}

// CurrentLevel 返回当前步骤对应的关卡 id，不在问答页时返回 false
func (s Session) CurrentLevel() (int, bool) {
	id := s.Step - StepName
	if id < 1 || id > s.LevelCount {
		return 0, false
	}
	return id, true
}

// IsEnd 是否已通过所有关卡
func (s Session) IsEnd() bool {
	return s.Step > LevelStep(s.LevelCount)
}

// ErrorVisible 错误提示在 now 时刻是否可见
func (s Session) ErrorVisible(now time.Time) bool {
	return !s.ErrorUntil.IsZero() && now.Before(s.ErrorUntil)
}

// Draft 返回输入框内容
func (s Session) Draft(field DraftField) string {
	switch field {
	case FieldName:
		return s.NameDraft
	case FieldAnswer1:
		return s.Answer1
	case FieldAnswer2:
		return s.Answer2
	}
	return ""
}

// advance 前进一步，并清空答案草稿与错误状态
func (s Session) advance() Session {
	s.Step++
	s.Answer1 = ""
	s.Answer2 = ""
	s.Errors = ErrorFlags{}
	s.ErrorUntil = time.Time{}
	return s
}

// Reduce 纯函数：根据事件计算新状态
//
// 返回的错误仅用于调用方记录日志或测试断言；
// ErrMismatch 时返回的状态已包含错误标记，其他错误时状态不变
func Reduce(s Session, ev Event, now time.Time) (Session, error) {
	switch e := ev.(type) {
	case TapHome:
		if s.Step != StepHome {
			return s, ErrWrongStep
		}
		return s.advance(), nil

	case TapStart:
		if s.Step != StepStart {
			return s, ErrWrongStep
		}
		return s.advance(), nil

	case SubmitName:
		if s.Step != StepName {
			return s, ErrWrongStep
		}
		if strings.TrimSpace(e.Name) == "" {
			return s, ErrEmptyName
		}
		s.Player.Name = e.Name
		return s.advance(), nil

	case EditDraft:
		switch e.Field {
		case FieldName:
			s.NameDraft = e.Text
		case FieldAnswer1:
			s.Answer1 = e.Text
		case FieldAnswer2:
			s.Answer2 = e.Text
		default:
			return s, fmt.Errorf("unknown draft field %d", e.Field)
		}
		return s, nil

	case AnswersChecked:
		levelID, ok := s.CurrentLevel()
		if !ok || levelID != e.Result.LevelID {
			return s, ErrStaleCheck
		}
		if e.Result.Correct() {
			s.Player.CurrentLevelIndex = levelID
			return s.advance(), nil
		}
		s.Errors = ErrorFlags{Input1: !e.Result.Match1, Input2: !e.Result.Match2}
		s.ErrorUntil = now.Add(config.ErrorDisplayDuration)
		return s, ErrMismatch

	case Tick:
		if !s.ErrorUntil.IsZero() && !now.Before(s.ErrorUntil) {
			s.ErrorUntil = time.Time{}
		}
		return s, nil
	}

	return s, fmt.Errorf("unknown event %T", ev)
}
