package game

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"

	"github.com/decker502/ticketquiz/pkg/config"
)

// NormalizeAnswer 规范化答案文本：去除首尾空白并转为小写
func NormalizeAnswer(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Digest 返回规范化答案的 SHA-256 摘要（64 位小写十六进制）
// 配置中的期望摘要必须用同一算法生成，否则所有答案都会判错
func Digest(s string) string {
	sum := sha256.Sum256([]byte(NormalizeAnswer(s)))
	return hex.EncodeToString(sum[:])
}

// MatchesDigest 判断答案是否与期望摘要一致
func MatchesDigest(answer, want string) bool {
	got := Digest(answer)
	want = strings.ToLower(strings.TrimSpace(want))
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}

// AnswerResult 一次答案校验的结果
type AnswerResult struct {
	LevelID int  // 被校验的关卡 id（1 开始）
	Match1  bool // 第一个答案是否正确
	Match2  bool // 第二个答案是否正确
}

// Correct 两个答案都正确
func (r AnswerResult) Correct() bool {
	return r.Match1 && r.Match2
}

// CheckAnswers 校验某一关的两个答案
func CheckAnswers(level config.LevelDefinition, answer1, answer2 string) AnswerResult {
	result := AnswerResult{LevelID: level.ID}
	if len(level.Answers) != config.AnswersPerLevel {
		return result
	}
	result.Match1 = MatchesDigest(answer1, level.Answers[0])
	result.Match2 = MatchesDigest(answer2, level.Answers[1])
	return result
}
