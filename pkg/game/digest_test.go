package game

import (
	"testing"

	"github.com/decker502/ticketquiz/pkg/config"
)

const (
	digestZero  = "5feceb66ffc86f38d952786c6d696c79c2dbc239dd4e91b46729d73a27fb57e9"
	digestA     = "ca978112ca1bbdcafac231b39a23dc4da786eff8147c4e72b9807785afee48bb"
	digestAlice = "2bd806c97f0e00af1a1fc3328fa763a9269723c8db8fac4f93af71db186d6e90"
	digestLove  = "9a6c458a3a56f2928729805576982551e4cdf68d2de360bcf0ebfd10d8b00f59"
	digestEmpty = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
)

// TestDigest 测试摘要计算与规范化
func TestDigest(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"0", digestZero},
		{"a", digestA},
		{" A ", digestA},
		{"\tA\n", digestA},
		{"ALICE", digestAlice},
		{"  Alice", digestAlice},
		{"愛", digestLove},
		{"", digestEmpty},
		{"   ", digestEmpty},
	}

	for _, tt := range tests {
		if got := Digest(tt.input); got != tt.want {
			t.Errorf("Digest(%q) = %s, want %s", tt.input, got, tt.want)
		}
	}
}

// TestDigestDeterministic 同一输入多次计算结果一致
func TestDigestDeterministic(t *testing.T) {
	first := Digest("Some Lyric Line")
	for i := 0; i < 10; i++ {
		if got := Digest("Some Lyric Line"); got != first {
			t.Fatalf("Digest is not deterministic: %s != %s", got, first)
		}
	}
	if len(first) != 64 {
		t.Errorf("Expected 64 hex chars, got %d", len(first))
	}
}

// TestMatchesDigest 期望摘要大小写与空白不影响比较
func TestMatchesDigest(t *testing.T) {
	if !MatchesDigest(" A", "CA978112CA1BBDCAFAC231B39A23DC4DA786EFF8147C4E72B9807785AFEE48BB") {
		t.Error("Expected uppercase digest to match")
	}
	if MatchesDigest("b", digestA) {
		t.Error("Expected different answer not to match")
	}
	if MatchesDigest("a", "short") {
		t.Error("Expected malformed digest not to match")
	}
}

// TestCheckAnswers 测试两个答案分别判定
func TestCheckAnswers(t *testing.T) {
	level := config.LevelDefinition{ID: 3, Answers: []string{digestA, digestAlice}}

	tests := []struct {
		name   string
		a1, a2 string
		want   AnswerResult
	}{
		{"both correct", "a", "Alice", AnswerResult{LevelID: 3, Match1: true, Match2: true}},
		{"first wrong", "b", "alice", AnswerResult{LevelID: 3, Match1: false, Match2: true}},
		{"second wrong", "A", "bob", AnswerResult{LevelID: 3, Match1: true, Match2: false}},
		{"swapped", "alice", "a", AnswerResult{LevelID: 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CheckAnswers(level, tt.a1, tt.a2)
			if got != tt.want {
				t.Errorf("CheckAnswers() = %+v, want %+v", got, tt.want)
			}
			if got.Correct() != (tt.want.Match1 && tt.want.Match2) {
				t.Errorf("Correct() = %v", got.Correct())
			}
		})
	}

	broken := config.LevelDefinition{ID: 1, Answers: []string{digestA}}
	if CheckAnswers(broken, "a", "a").Correct() {
		t.Error("Level without two digests must never be correct")
	}
}

// TestAnswerChecker 测试后台校验与轮询
func TestAnswerChecker(t *testing.T) {
	checker := NewAnswerChecker()
	level := config.LevelDefinition{ID: 1, Answers: []string{digestZero, digestZero}}

	if _, ok := checker.Poll(); ok {
		t.Fatal("Poll() returned a result before any submit")
	}

	if !checker.Submit(level, "0", " 0 ") {
		t.Fatal("Submit() rejected first check")
	}
	if !checker.Pending() {
		t.Error("Expected pending check after submit")
	}
	if checker.Submit(level, "x", "y") {
		t.Error("Expected second submit to be ignored while pending")
	}

	var result AnswerResult
	for {
		r, ok := checker.Poll()
		if ok {
			result = r
			break
		}
	}

	if !result.Correct() || result.LevelID != 1 {
		t.Errorf("Unexpected result %+v", result)
	}
	if checker.Pending() {
		t.Error("Expected no pending check after poll")
	}
	if !checker.Submit(level, "1", "0") {
		t.Error("Expected submit to be accepted after result was polled")
	}
}
