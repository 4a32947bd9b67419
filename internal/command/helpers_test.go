package command

import "github.com/ActuallyHappening/cargo-leptos/internal/sysenv"

func fakeProc(cwd string) *sysenv.Fake { return sysenv.NewFake(cwd, nil) }
