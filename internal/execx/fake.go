package execx

import "context"

// FakeRunner is a scripted Runner for tests. It records every invocation
// and replays canned results, so step tests can assert exact argument
// vectors without spawning real tools.
type FakeRunner struct {
	// Results are returned by successive Run calls; when exhausted, Run
	// returns a zero Result.
	Results []Result
	// RunErr, when set, makes every Run call fail as a spawn error.
	RunErr error
	// StreamErr is returned by Stream.
	StreamErr error

	RunCalls    []Cmd
	StreamCalls []Cmd
}

func (f *FakeRunner) Run(_ context.Context, cmd Cmd) (Result, error) {
	f.RunCalls = append(f.RunCalls, cmd)
	if f.RunErr != nil {
		return Result{}, f.RunErr
	}
	if len(f.Results) == 0 {
		return Result{}, nil
	}
	res := f.Results[0]
	f.Results = f.Results[1:]
	return res, nil
}

func (f *FakeRunner) Stream(_ context.Context, cmd Cmd) error {
	f.StreamCalls = append(f.StreamCalls, cmd)
	return f.StreamErr
}
