package systems

import (
	"log"
	"sort"

	"github.com/decker502/ticketquiz/pkg/components"
	"github.com/decker502/ticketquiz/pkg/config"
	"github.com/decker502/ticketquiz/pkg/ecs"
	"github.com/decker502/ticketquiz/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// KeyboardInput 键盘输入来源（测试中可替换）
type KeyboardInput interface {
	AppendInputChars(runes []rune) []rune
	// KeyRepeat 按键刚按下或按住连发
	KeyRepeat(key ebiten.Key) bool
	IsKeyJustPressed(key ebiten.Key) bool
	IsShortcutModifierPressed() bool
}

type ebitenKeyboard struct{}

func (ebitenKeyboard) AppendInputChars(runes []rune) []rune  { return ebiten.AppendInputChars(runes) }
func (ebitenKeyboard) KeyRepeat(key ebiten.Key) bool         { return utils.KeyRepeat(key) }
func (ebitenKeyboard) IsKeyJustPressed(key ebiten.Key) bool  { return inpututil.IsKeyJustPressed(key) }
func (ebitenKeyboard) IsShortcutModifierPressed() bool       { return utils.IsShortcutModifierPressed() }

// TextInputSystem 文本输入系统
// 处理文本输入框的焦点、键盘输入、粘贴、光标闪烁等逻辑
//
// 只有属于当前最上层图层的输入框可以获得焦点。
type TextInputSystem struct {
	entityManager *ecs.EntityManager
	keyboard      KeyboardInput
	clipboard     ClipboardReader
}

// NewTextInputSystem 创建文本输入系统
// clipboard 可为 nil（禁用粘贴）
func NewTextInputSystem(em *ecs.EntityManager, clipboard ClipboardReader) *TextInputSystem {
	return &TextInputSystem{
		entityManager: em,
		keyboard:      ebitenKeyboard{},
		clipboard:     clipboard,
	}
}

// SetKeyboard 替换键盘输入来源
func (s *TextInputSystem) SetKeyboard(keyboard KeyboardInput) {
	s.keyboard = keyboard
}

// Update 更新文本输入系统，返回指针是否悬停在可用输入框上
func (s *TextInputSystem) Update(deltaTime float64, activeZ int, pointer utils.InputState) bool {
	inputs := s.inputs()
	hovering := false

	// 1. 焦点：点击输入框获得焦点，点击其他位置失去焦点
	for _, input := range inputs {
		if input.LayerZ != activeZ {
			input.IsFocused = false
			continue
		}
		inside := utils.InRect(pointer.X, pointer.Y, input.Rect)
		if inside {
			hovering = true
		}
		if pointer.JustPressed {
			if inside && !input.IsFocused {
				input.CursorPosition = len([]rune(input.Text))
			}
			input.IsFocused = inside
		}
	}

	// 2. 键盘输入只发给获得焦点的输入框
	for _, input := range inputs {
		if !input.IsFocused {
			input.CursorVisible = false
			continue
		}

		s.updateCursorBlink(input, deltaTime)

		if s.keyboard.IsKeyJustPressed(ebiten.KeyTab) {
			s.focusNext(inputs, input)
			break
		}
		if s.keyboard.IsKeyJustPressed(ebiten.KeyEnter) || s.keyboard.IsKeyJustPressed(ebiten.KeyNumpadEnter) {
			if input.OnSubmit != nil {
				input.OnSubmit()
			}
			break
		}

		s.handleKeyboardInput(input)
		break
	}

	return hovering
}

// FocusFirst 让 z 图层中 TabOrder 最小的输入框获得焦点，其他输入框失去焦点
func (s *TextInputSystem) FocusFirst(z int) {
	var first *components.TextInputComponent
	for _, input := range s.inputs() {
		input.IsFocused = false
		if input.LayerZ == z && first == nil {
			first = input
		}
	}
	if first != nil {
		first.IsFocused = true
		first.CursorPosition = len([]rune(first.Text))
		first.CursorVisible = true
		first.CursorBlinkTimer = 0
	}
}

// inputs 返回所有输入框，按 (LayerZ, TabOrder) 排序
func (s *TextInputSystem) inputs() []*components.TextInputComponent {
	ids := ecs.GetEntitiesWith1[*components.TextInputComponent](s.entityManager)
	result := make([]*components.TextInputComponent, 0, len(ids))
	for _, id := range ids {
		input, _ := ecs.GetComponent[*components.TextInputComponent](s.entityManager, id)
		result = append(result, input)
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].LayerZ != result[j].LayerZ {
			return result[i].LayerZ < result[j].LayerZ
		}
		return result[i].TabOrder < result[j].TabOrder
	})
	return result
}

// focusNext 焦点移到同一图层的下一个输入框（循环）
func (s *TextInputSystem) focusNext(inputs []*components.TextInputComponent, current *components.TextInputComponent) {
	var group []*components.TextInputComponent
	for _, input := range inputs {
		if input.LayerZ == current.LayerZ {
			group = append(group, input)
		}
	}
	for i, input := range group {
		if input != current {
			continue
		}
		next := group[(i+1)%len(group)]
		current.IsFocused = false
		current.CursorVisible = false
		next.IsFocused = true
		next.CursorPosition = len([]rune(next.Text))
		next.CursorVisible = true
		next.CursorBlinkTimer = 0
		return
	}
}

// updateCursorBlink 更新光标闪烁状态
func (s *TextInputSystem) updateCursorBlink(input *components.TextInputComponent, deltaTime float64) {
	input.CursorBlinkTimer += deltaTime
	if input.CursorBlinkTimer >= config.CursorBlinkInterval {
		input.CursorBlinkTimer = 0
		input.CursorVisible = !input.CursorVisible
	}
}

// handleKeyboardInput 处理键盘输入
func (s *TextInputSystem) handleKeyboardInput(input *components.TextInputComponent) {
	before := input.Text

	// 1. 粘贴（Ctrl/Cmd+V）
	if s.keyboard.IsShortcutModifierPressed() && s.keyboard.IsKeyJustPressed(ebiten.KeyV) {
		if s.clipboard != nil {
			if pasted, ok := s.clipboard.ReadText(); ok {
				insertText(input, singleLine(pasted))
			}
		}
	} else if runes := s.keyboard.AppendInputChars(nil); len(runes) > 0 {
		// 2. 文本字符输入（包括 IME 提交的中文）
		insertText(input, string(runes))
	}

	// 3. 退格键 / 删除键（支持按住连续删除）
	if s.keyboard.KeyRepeat(ebiten.KeyBackspace) {
		deleteCharBefore(input)
	}
	if s.keyboard.KeyRepeat(ebiten.KeyDelete) {
		deleteCharAfter(input)
	}

	// 4. 光标移动
	if s.keyboard.KeyRepeat(ebiten.KeyArrowLeft) && input.CursorPosition > 0 {
		input.CursorPosition--
		s.showCursor(input)
	}
	if s.keyboard.KeyRepeat(ebiten.KeyArrowRight) && input.CursorPosition < len([]rune(input.Text)) {
		input.CursorPosition++
		s.showCursor(input)
	}
	if s.keyboard.IsKeyJustPressed(ebiten.KeyHome) {
		input.CursorPosition = 0
		s.showCursor(input)
	}
	if s.keyboard.IsKeyJustPressed(ebiten.KeyEnd) {
		input.CursorPosition = len([]rune(input.Text))
		s.showCursor(input)
	}

	if input.Text != before {
		s.showCursor(input)
		if input.OnChange != nil {
			input.OnChange(input.Text)
		}
	}
}

// showCursor 输入时光标应该可见
func (s *TextInputSystem) showCursor(input *components.TextInputComponent) {
	input.CursorBlinkTimer = 0
	input.CursorVisible = true
}

// insertText 在光标位置插入文本
func insertText(input *components.TextInputComponent, text string) {
	if text == "" {
		return
	}

	textRunes := []rune(input.Text)
	newRunes := []rune(text)

	// 检查最大长度限制
	if input.MaxLength > 0 && len(textRunes)+len(newRunes) > input.MaxLength {
		room := input.MaxLength - len(textRunes)
		if room <= 0 {
			log.Printf("[TextInputSystem] Max length reached (%d chars)", input.MaxLength)
			return
		}
		newRunes = newRunes[:room]
	}

	pos := clampCursor(input.CursorPosition, len(textRunes))
	result := make([]rune, 0, len(textRunes)+len(newRunes))
	result = append(result, textRunes[:pos]...)
	result = append(result, newRunes...)
	result = append(result, textRunes[pos:]...)

	input.Text = string(result)
	input.CursorPosition = pos + len(newRunes)
}

// deleteCharBefore 删除光标前的字符（退格）
func deleteCharBefore(input *components.TextInputComponent) {
	runes := []rune(input.Text)
	pos := clampCursor(input.CursorPosition, len(runes))
	if pos == 0 {
		return
	}
	input.Text = string(append(runes[:pos-1:pos-1], runes[pos:]...))
	input.CursorPosition = pos - 1
}

// deleteCharAfter 删除光标后的字符（Delete键）
func deleteCharAfter(input *components.TextInputComponent) {
	runes := []rune(input.Text)
	pos := clampCursor(input.CursorPosition, len(runes))
	if pos >= len(runes) {
		return
	}
	input.Text = string(append(runes[:pos:pos], runes[pos+1:]...))
}

func clampCursor(pos, n int) int {
	if pos < 0 {
		return 0
	}
	if pos > n {
		return n
	}
	return pos
}

// SetText 替换输入框文本（外部状态变化时同步），光标移到末尾
func SetText(input *components.TextInputComponent, text string) {
	if input.Text == text {
		return
	}
	input.Text = text
	input.CursorPosition = len([]rune(text))
}
