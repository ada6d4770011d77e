package game

import (
	"log"

	"github.com/decker502/ticketquiz/pkg/config"
)

// AnswerChecker 在后台计算答案摘要，由场景在 Update 中轮询结果
//
// 两阶段：
//  1. Submit 启动 goroutine 计算摘要（不阻塞游戏循环）
//  2. Poll 取回结果，由调用方在同一帧内同步应用状态转换
//
// 同一时间只允许一个待处理的校验，重复提交会被忽略
type AnswerChecker struct {
	results chan AnswerResult
	pending bool
}

// NewAnswerChecker 创建答案校验器
func NewAnswerChecker() *AnswerChecker {
	return &AnswerChecker{
		results: make(chan AnswerResult, 1),
	}
}

// Submit 提交一次校验
// 返回 false 表示上一次校验尚未完成，本次提交被忽略
func (c *AnswerChecker) Submit(level config.LevelDefinition, answer1, answer2 string) bool {
	if c.pending {
		log.Printf("[AnswerChecker] Check for level %d still pending, ignoring submit", level.ID)
		return false
	}
	c.pending = true

	go func() {
		c.results <- CheckAnswers(level, answer1, answer2)
	}()
	return true
}

// Poll 非阻塞地取回校验结果
func (c *AnswerChecker) Poll() (AnswerResult, bool) {
	select {
	case result := <-c.results:
		c.pending = false
		return result, true
	default:
		return AnswerResult{}, false
	}
}

// Pending 是否有待处理的校验
func (c *AnswerChecker) Pending() bool {
	return c.pending
}
