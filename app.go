package glrender

import (
	"fmt"
	"reflect"
	"runtime"
)

type systemFn any

type Module interface {
	Install(app *App, cmd *Commands)
}

type App struct {
	stages    []Stage
	systems   map[string][]systemFn
	resources map[reflect.Type]any

	running   bool
	stopped   bool
	frames    uint64
	maxFrames uint64

	setupErr   error
	onShutdown []func()
}

func NewApp() *App {
	app := &App{
		systems:   make(map[string][]systemFn),
		resources: make(map[reflect.Type]any),
	}
	for _, stage := range defaultStages {
		app.stages = append(app.stages, stage)
		app.systems[stage.Name] = make([]systemFn, 0)
	}
	return app
}

func (app *App) Commands() *Commands {
	return &Commands{
		app: app,
	}
}

// UseModules installs modules in order. Once a module has reported a setup
// failure the remaining modules are skipped.
func (app *App) UseModules(modules ...Module) *App {
	cmd := app.Commands()
	for _, module := range modules {
		if app.setupErr != nil {
			return app
		}
		module.Install(app, cmd)
	}
	return app
}

// Err returns the first setup failure reported by a module.
func (app *App) Err() error { return app.setupErr }

// Frames returns the number of frames that ran through every stage.
func (app *App) Frames() uint64 { return app.frames }

// Run executes frames until a system stops the app, then shuts it down.
// A setup failure is returned without running any frame.
func (app *App) Run() error {
	return app.RunFrames(0)
}

// RunFrames is Run with an upper bound on the number of frames. Zero means no bound.
func (app *App) RunFrames(n uint64) error {
	defer app.Shutdown()

	if app.setupErr != nil {
		return app.setupErr
	}

	app.maxFrames = n
	app.running = true
	app.Logger().Debugf("running %d stages", len(app.stages))

	for app.running {
		app.callSystems()
		if !app.running {
			break
		}
		app.frames++
		if app.maxFrames > 0 && app.frames >= app.maxFrames {
			app.running = false
		}
	}
	return nil
}

func (app *App) stop() {
	app.running = false
}

// Shutdown runs the Finale stage once, then the registered shutdown hooks in
// reverse order of registration. Later calls do nothing.
func (app *App) Shutdown() {
	if app.stopped {
		return
	}
	app.stopped = true
	app.running = false

	for _, system := range app.systems[Finale.Name] {
		app.callSystem(system)
	}
	for i := len(app.onShutdown) - 1; i >= 0; i-- {
		app.onShutdown[i]()
	}
	app.onShutdown = nil
}

func (app *App) callSystems() {
	for _, stage := range app.stages {
		if stage.Name == Finale.Name {
			continue
		}
		for _, system := range app.systems[stage.Name] {
			app.callSystem(system)
			if !app.running {
				return
			}
		}
	}
}

func (app *App) fail(err error) {
	if app.setupErr == nil {
		app.setupErr = err
		app.Logger().Errorf("setup failed: %v", err)
	}
}

func (app *App) addResources(resources ...any) *App {
	for _, resource := range resources {
		resourceType := reflect.TypeOf(resource)
		if _, ok := app.resources[resourceType.Elem()]; ok {
			panic(fmt.Sprintf("%s is already in resources", resourceType))
		}

		app.resources[resourceType.Elem()] = resource
	}
	return app
}

// Resource looks up a resource by its pointed-to type.
func Resource[T any](app *App) (*T, bool) {
	r, ok := app.resources[reflect.TypeOf((*T)(nil)).Elem()]
	if !ok {
		return nil, false
	}
	return r.(*T), true
}

func (app *App) callSystem(system systemFn) {
	app.callSystemInternal(system)
}

var typeOfCommands = reflect.TypeOf(Commands{})

func (app *App) callSystemInternal(system systemFn) {
	systemType := reflect.TypeOf(system)
	systemValue := reflect.ValueOf(system)

	args := make([]reflect.Value, systemType.NumIn())

	for i := 0; i < systemType.NumIn(); i++ {
		argType := systemType.In(i)
		underlyingType := argType.Elem()

		if underlyingType == typeOfCommands {
			args[i] = reflect.ValueOf(&Commands{app: app})
		} else if resource, argIsResource := app.resources[underlyingType]; argIsResource {
			args[i] = reflect.ValueOf(resource)
		} else {
			msg := fmt.Sprintf("Unable to resolve System dependency.\nSystem: %s\nSystem type: %s\nDependency: %s",
				runtime.FuncForPC(systemValue.Pointer()).Name(),
				fmt.Sprint(systemType),
				fmt.Sprint(argType),
			)
			app.Logger().Errorf("%s", msg)
			panic(msg)
		}
	}
	systemValue.Call(args)
}
