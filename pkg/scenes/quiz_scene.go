package scenes

import (
	"errors"
	"image"
	"image/color"
	"log"
	"time"

	"github.com/decker502/ticketquiz/pkg/components"
	"github.com/decker502/ticketquiz/pkg/config"
	"github.com/decker502/ticketquiz/pkg/ecs"
	"github.com/decker502/ticketquiz/pkg/game"
	"github.com/decker502/ticketquiz/pkg/systems"
	"github.com/decker502/ticketquiz/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"
)

// MusicPlayer 问答页播放声音按钮使用的音乐接口（*game.AudioManager 实现）
type MusicPlayer interface {
	PlayTrack(ref string)
	Stop()
}

// levelWidgets 单个关卡图层上的输入框与错误提示
type levelWidgets struct {
	answer1 *components.TextInputComponent
	answer2 *components.TextInputComponent
	errMsg  *components.LabelComponent
}

// QuizScene 问答主场景
//
// 所有图层一次性创建为实体并按 Z 叠放，Session.Step 决定哪些图层可见；
// 只有最上层可见图层接收输入，倒数遮罩显示时不接收任何输入。
// 状态转换全部经由 game.Reduce，组件只是状态的投影。
type QuizScene struct {
	cfg     *config.QuizConfig
	images  systems.ImageProvider
	music   MusicPlayer
	font    systems.FontFunc
	clock   game.Clock
	pointer func() utils.InputState

	session game.Session
	checker *game.AnswerChecker
	gate    *game.CountdownGate
	layers  []game.Layer
	activeZ int

	// ECS
	entityManager     *ecs.EntityManager
	layerFadeSystem   *systems.LayerFadeSystem
	hotspotSystem     *systems.HotspotSystem
	textInputSystem   *systems.TextInputSystem
	layerRenderSystem *systems.LayerRenderSystem

	nameInput *components.TextInputComponent
	endName   *components.LabelComponent
	levels    map[int]*levelWidgets

	backdrop  *ebiten.Image
	cursor    ebiten.CursorShapeType
	setCursor func(ebiten.CursorShapeType)
}

// NewQuizScene 创建问答场景
// clipboard 可为 nil（禁用粘贴），font 返回 nil 时不绘制文字
func NewQuizScene(cfg *config.QuizConfig, images systems.ImageProvider, music MusicPlayer, font systems.FontFunc, clipboard systems.ClipboardReader) *QuizScene {
	em := ecs.NewEntityManager()
	s := &QuizScene{
		cfg:     cfg,
		images:  images,
		music:   music,
		font:    font,
		clock:   time.Now,
		pointer: utils.GetInputState,

		session: game.NewSession(len(cfg.Levels)),
		checker: game.NewAnswerChecker(),
		gate:    game.NewCountdownGate(cfg.Target()),
		activeZ: -1,

		entityManager:   em,
		layerFadeSystem: systems.NewLayerFadeSystem(em),
		hotspotSystem:   systems.NewHotspotSystem(em),
		textInputSystem: systems.NewTextInputSystem(em, clipboard),
		layerRenderSystem: systems.NewLayerRenderSystem(em, images,
			systems.NewTextInputRenderSystem(font), systems.NewLabelRenderSystem(font)),

		backdrop:  newBackdrop(cfg.Screen.Height),
		cursor:    ebiten.CursorShapeDefault,
		setCursor: ebiten.SetCursorShape,
	}
	s.buildEntities()

	if dups := cfg.DuplicateDigestLevels(); len(dups) > 0 {
		log.Printf("[QuizScene] Warning: levels %v share the answer digests of an earlier level", dups)
	}
	return s
}

// SetClock 替换时钟（测试用）
func (s *QuizScene) SetClock(clock game.Clock) {
	s.clock = clock
}

// Session 返回当前会话状态（只读副本）
func (s *QuizScene) Session() game.Session {
	return s.session
}

// Locked 倒数遮罩是否显示
func (s *QuizScene) Locked() bool {
	return s.gate.Locked()
}

// ApplyConfig 热重载配置：重建图层与热区，保留会话进度
func (s *QuizScene) ApplyConfig(cfg *config.QuizConfig) {
	s.cfg = cfg
	s.session.LevelCount = len(cfg.Levels)
	s.gate.SetTarget(cfg.Target())

	s.entityManager.Clear()
	s.buildEntities()
	s.activeZ = -1

	log.Printf("[QuizScene] Config reloaded: %d levels, start time %s, step %d kept",
		len(cfg.Levels), cfg.StartTime, s.session.Step)
}

// buildEntities 按配置创建所有图层、热区、输入框与标签实体
func (s *QuizScene) buildEntities() {
	em := s.entityManager
	w, h := s.cfg.Screen.Width, s.cfg.Screen.Height
	layout := s.cfg.Layout

	s.layers = game.BuildLayers(s.cfg)
	s.levels = make(map[int]*levelWidgets, len(s.cfg.Levels))

	for _, layer := range s.layers {
		ecs.AddComponent(em, em.CreateEntity(), components.NewLayerComponent(layer, s.session.Step))

		switch layer.Kind {
		case game.LayerHome:
			s.addHotspot("home", layer.Z, layout.Home.Button.Resolve(w, h), func() { s.dispatch(game.TapHome{}) })

		case game.LayerStart:
			s.addHotspot("start", layer.Z, layout.Start.Button.Resolve(w, h), func() { s.dispatch(game.TapStart{}) })

		case game.LayerName:
			s.nameInput = s.addInput(layer.Z, 0, layout.Name.Input.Resolve(w, h), config.NamePlaceholder, game.FieldName, s.submitName)
			s.addHotspot("confirm", layer.Z, layout.Name.Button.Resolve(w, h), s.submitName)

		case game.LayerLevel:
			s.buildLevel(layer)

		case game.LayerEnd:
			s.endName = &components.LabelComponent{
				Rect:      layout.End.NameDisplay.Resolve(w, h),
				LayerZ:    layer.Z,
				Sizing:    components.LabelFitRect,
				TextColor: colornames.Black,
				Visible:   true,
				Alpha:     1,
			}
			ecs.AddComponent(em, em.CreateEntity(), s.endName)
		}
	}
	s.syncComponents(s.clock())
}

// buildLevel 创建关卡图层上的两个输入框、两个按钮和错误提示
func (s *QuizScene) buildLevel(layer game.Layer) {
	w, h := s.cfg.Screen.Width, s.cfg.Screen.Height
	layout := s.cfg.Layout.Game
	levelID := layer.LevelID
	level := s.cfg.Levels[levelID-1]
	submit := func() { s.submitAnswers(levelID) }

	widgets := &levelWidgets{
		answer1: s.addInput(layer.Z, 0, layout.Input1.Resolve(w, h), config.Answer1Placeholder, game.FieldAnswer1, submit),
		answer2: s.addInput(layer.Z, 1, layout.Input2.Resolve(w, h), config.Answer2Placeholder, game.FieldAnswer2, submit),
	}

	musicRef := s.cfg.ResolveAsset(level.Music)
	s.addHotspot("music", layer.Z, layout.BtnMusic.Resolve(w, h), func() {
		if musicRef == "" || s.music == nil {
			return
		}
		s.music.PlayTrack(musicRef)
	})
	s.addHotspot("submit", layer.Z, layout.BtnSubmit.Resolve(w, h), submit)

	// 错误提示：横向居中，顶部位于 ErrorTop%
	top := int(layout.ErrorTop / 100 * float64(h))
	widgets.errMsg = &components.LabelComponent{
		Text:         config.ErrorMessageText,
		Rect:         image.Rect(0, top, w, top+int(config.ErrorFontSize)*2),
		LayerZ:       layer.Z,
		Sizing:       components.LabelFixed,
		FontSize:     config.ErrorFontSize,
		TextColor:    colornames.Crimson,
		Background:   color.RGBA{R: 242, G: 242, B: 242, A: 242},
		Border:       colornames.Red,
		FadeDuration: config.ErrorFadeDuration,
	}
	ecs.AddComponent(s.entityManager, s.entityManager.CreateEntity(), widgets.errMsg)

	s.levels[levelID] = widgets
}

func (s *QuizScene) addHotspot(name string, z int, rect image.Rectangle, onClick func()) {
	ecs.AddComponent(s.entityManager, s.entityManager.CreateEntity(), &components.HotspotComponent{
		Name:    name,
		Rect:    rect,
		LayerZ:  z,
		Enabled: true,
		OnClick: onClick,
	})
}

func (s *QuizScene) addInput(z, tabOrder int, rect image.Rectangle, placeholder string, field game.DraftField, onSubmit func()) *components.TextInputComponent {
	input := &components.TextInputComponent{
		Rect:        rect,
		LayerZ:      z,
		TabOrder:    tabOrder,
		Placeholder: placeholder,
		OnChange:    func(text string) { s.dispatch(game.EditDraft{Field: field, Text: text}) },
		OnSubmit:    onSubmit,
	}
	ecs.AddComponent(s.entityManager, s.entityManager.CreateEntity(), input)
	return input
}

// submitName 提交名字（空名字被静默忽略）
func (s *QuizScene) submitName() {
	s.dispatch(game.SubmitName{Name: s.session.NameDraft})
}

// submitAnswers 在后台校验当前关卡的两个答案
func (s *QuizScene) submitAnswers(levelID int) {
	current, ok := s.session.CurrentLevel()
	if !ok || current != levelID {
		return
	}
	s.checker.Submit(s.cfg.Levels[levelID-1], s.session.Answer1, s.session.Answer2)
}

// dispatch 应用一个事件
func (s *QuizScene) dispatch(ev game.Event) {
	prev := s.session.Step
	next, err := game.Reduce(s.session, ev, s.clock())
	switch {
	case err == nil:
	case errors.Is(err, game.ErrMismatch):
		log.Printf("[QuizScene] Wrong answer on step %d (input1=%v, input2=%v)", prev, next.Errors.Input1, next.Errors.Input2)
	case errors.Is(err, game.ErrEmptyName):
		return
	default:
		log.Printf("[QuizScene] Ignored %T: %v", ev, err)
		return
	}
	s.session = next

	if next.Step != prev {
		log.Printf("[QuizScene] Step %d -> %d", prev, next.Step)
		if next.IsEnd() {
			log.Printf("[QuizScene] All %d levels cleared by %q", next.LevelCount, next.Player.Name)
		}
	}
}

// Update 更新场景
func (s *QuizScene) Update(deltaTime float64) {
	now := s.clock()
	if s.gate.Update(now) && s.gate.Locked() {
		log.Printf("[QuizScene] Locked, %s remaining", s.gate.Text())
	}

	if result, ok := s.checker.Poll(); ok {
		s.dispatch(game.AnswersChecked{Result: result})
	}
	s.dispatch(game.Tick{})

	s.syncComponents(now)
	s.layerFadeSystem.Update(deltaTime, s.session.Step)

	if s.gate.Locked() {
		s.updateCursor(ebiten.CursorShapeDefault)
		return
	}

	activeZ := -1
	if layer, ok := game.FrontmostInteractive(s.layers, s.session.Step); ok {
		activeZ = layer.Z
	}
	if activeZ != s.activeZ {
		s.activeZ = activeZ
		s.textInputSystem.FocusFirst(activeZ)
	}

	pointer := s.pointer()
	overInput := s.textInputSystem.Update(deltaTime, activeZ, pointer)
	overHotspot := s.hotspotSystem.Update(activeZ, pointer)

	switch {
	case overHotspot:
		s.updateCursor(ebiten.CursorShapePointer)
	case overInput:
		s.updateCursor(ebiten.CursorShapeText)
	default:
		s.updateCursor(ebiten.CursorShapeDefault)
	}
}

// syncComponents 将会话状态投影到组件上
func (s *QuizScene) syncComponents(now time.Time) {
	if s.nameInput != nil {
		systems.SetText(s.nameInput, s.session.NameDraft)
	}

	current, _ := s.session.CurrentLevel()
	for id, w := range s.levels {
		// 所有关卡共用同一份答案草稿，错误状态只属于当前关卡
		systems.SetText(w.answer1, s.session.Answer1)
		systems.SetText(w.answer2, s.session.Answer2)

		isCurrent := id == current
		w.answer1.Error = isCurrent && s.session.Errors.Input1
		w.answer2.Error = isCurrent && s.session.Errors.Input2
		w.errMsg.Visible = isCurrent && s.session.ErrorVisible(now)
	}

	if s.endName != nil {
		s.endName.Text = s.session.Player.Name
	}
}

func (s *QuizScene) updateCursor(shape ebiten.CursorShapeType) {
	if shape == s.cursor || utils.IsMobile() {
		return
	}
	s.cursor = shape
	if s.setCursor != nil {
		s.setCursor(shape)
	}
}

// Draw 绘制背景渐变、所有图层和倒数遮罩
func (s *QuizScene) Draw(screen *ebiten.Image) {
	drawBackdrop(screen, s.backdrop)
	s.layerRenderSystem.Draw(screen)

	if s.gate.Locked() {
		s.drawOverlay(screen)
	}
}

// drawOverlay 绘制倒数遮罩（黑色 90% 不透明，居中白字）
func (s *QuizScene) drawOverlay(screen *ebiten.Image) {
	b := screen.Bounds()
	vector.DrawFilledRect(screen, 0, 0, float32(b.Dx()), float32(b.Dy()),
		color.RGBA{A: config.OverlayAlpha}, false)

	if s.font == nil || s.gate.Text() == "" {
		return
	}
	face := s.font(config.CountdownFontSize)
	if face == nil {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(b.Dx())/2, float64(b.Dy())/2)
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	op.ColorScale.ScaleWithColor(colornames.White)
	text.Draw(screen, s.gate.Text(), face, op)
}

// Close 离开场景时停止音乐
func (s *QuizScene) Close() {
	if s.music != nil {
		s.music.Stop()
	}
}
