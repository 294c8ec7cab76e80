package glrender

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockResource1 struct {
	name string
}
type MockResource2 struct {
	name string
}

func NewMockResource1(name string) *MockResource1 {
	return &MockResource1{name: name}
}
func NewMockResource2(name string) *MockResource2 {
	return &MockResource2{name: name}
}

func TestApp_addResources(t *testing.T) {
	app := &App{
		resources: make(map[reflect.Type]any),
	}

	resource1 := NewMockResource1("Resource1")
	app.addResources(resource1)

	assert.Contains(t, app.resources, reflect.TypeOf(resource1).Elem(), "Resource1 should be in resources map.")

	// Expect panic when trying to add the same type of resource again
	require.PanicsWithValue(t, fmt.Sprintf("%s is already in resources", reflect.TypeOf(resource1)), func() {
		app.addResources(resource1)
	})

	resource2 := NewMockResource2("Resource2")
	app.addResources(resource2)

	assert.Contains(t, app.resources, reflect.TypeOf(resource2).Elem(), "Resource2 should be in resources map.")

	got, ok := Resource[MockResource2](app)
	require.True(t, ok)
	assert.Same(t, resource2, got)
}

func TestApp_SystemsRunInStageOrder(t *testing.T) {
	app := NewApp()
	var order []string
	app.UseSystem(System(func() { order = append(order, "render") }).InStage(Render))
	app.UseSystem(System(func() { order = append(order, "prelude") }).InStage(Prelude))
	app.UseSystem(System(func() { order = append(order, "update") }))
	app.UseSystem(System(func() { order = append(order, "finale") }).InStage(Finale))

	require.NoError(t, app.RunFrames(2))

	assert.Equal(t, []string{"prelude", "update", "render", "prelude", "update", "render", "finale"}, order)
	assert.Equal(t, uint64(2), app.Frames())
}

func TestApp_InjectsResourcesAndCommands(t *testing.T) {
	app := NewApp()
	app.addResources(NewMockResource1("one"))

	var seen string
	app.UseSystem(System(func(r *MockResource1, cmd *Commands) {
		seen = r.name
		cmd.Stop()
	}))

	require.NoError(t, app.Run())
	assert.Equal(t, "one", seen)
	assert.Zero(t, app.Frames(), "a frame stopped in Update is not complete")
}

func TestApp_StopSkipsRestOfFrame(t *testing.T) {
	app := NewApp()
	rendered := 0
	app.UseSystem(System(func(cmd *Commands) { cmd.Stop() }).InStage(Prelude))
	app.UseSystem(System(func() { rendered++ }).InStage(Render))

	require.NoError(t, app.Run())
	assert.Zero(t, rendered)
}

func TestApp_MissingDependencyPanics(t *testing.T) {
	app := NewApp()
	app.UseSystem(System(func(*MockResource2) {}))

	assert.Panics(t, func() { app.callSystems() })
}

func TestApp_UnknownStagePanics(t *testing.T) {
	app := NewApp()
	assert.PanicsWithValue(t, "Stage Nope doesn't exist", func() {
		app.UseSystem(System(func() {}).InStage(Stage{Name: "Nope"}))
	})
}

func TestApp_UseStage(t *testing.T) {
	app := NewApp()
	late := Stage{Name: "LateUpdate"}
	app.UseStage(late, AfterStage(Update))

	var order []string
	app.UseSystem(System(func() { order = append(order, "late") }).InStage(late))
	app.UseSystem(System(func() { order = append(order, "update") }))
	app.UseSystem(System(func() { order = append(order, "post") }).InStage(PostUpdate))

	require.NoError(t, app.RunFrames(1))
	assert.Equal(t, []string{"update", "late", "post"}, order)

	assert.Panics(t, func() { app.UseStage(late, BeforeStage(Render)) })
	assert.Panics(t, func() { app.UseStage(Stage{Name: "X"}, BeforeStage(Stage{Name: "Missing"})) })
}

func TestApp_ShutdownHooksRunInReverseOnce(t *testing.T) {
	app := NewApp()
	cmd := app.Commands()
	var order []int
	cmd.OnShutdown(func() { order = append(order, 1) })
	cmd.OnShutdown(func() { order = append(order, 2) })

	require.NoError(t, app.RunFrames(1))
	app.Shutdown()

	assert.Equal(t, []int{2, 1}, order)
}

type failingModule struct{ err error }

func (m failingModule) Install(app *App, cmd *Commands) { cmd.Fail(m.err) }

func TestApp_FailSkipsRemainingModules(t *testing.T) {
	boom := errors.New("boom")
	later := &MockModule{}
	cleaned := false

	app := NewApp()
	app.Commands().OnShutdown(func() { cleaned = true })
	app.UseModules(failingModule{err: boom}, later, failingModule{err: errors.New("second")})

	assert.False(t, later.installed)
	assert.ErrorIs(t, app.Err(), boom)

	ran := false
	app.UseSystem(System(func() { ran = true }))
	assert.ErrorIs(t, app.Run(), boom)
	assert.False(t, ran)
	assert.True(t, cleaned, "shutdown hooks still run after a setup failure")
}
