// Package cascade provides an asynchronous coordination core for managing
// applications on a distributed app platform.
//
// The package is organised around a small future primitive
// (runtime/future) and three composition patterns built on it: sequential
// chains (runtime/chain), list-driven fan-out with exactly-once completion
// (runtime/fanin) and batch groups (future.Group). Domain actions over
// manifests, profiles, runlists and crash logs live under service/action
// and only depend on the storage and node collaborator interfaces.
//
// End-users typically interact with the high-level Service façade exposed
// by the root package:
//
//	srv := cascade.New()
//	srv.Start(ctx)
//	action, _ := app.NewListAction(srv.Storage())
//	f, _ := srv.Execute(ctx, "app:list", action)
//	chunks, _ := f.Wait(ctx)
//
// For more details see the README and individual sub-packages.
package cascade
