// Package events defines the notification protocol for model pulls.
//
// The pull orchestrator publishes named events to a Sink as a pull moves
// through its lifecycle. Sinks are fire-and-forget observers; any delivery
// mechanism (callback, channel, UI bridge) can implement the interface.
//
// # Events
//
//	models:pull-start      {pull_id, name}
//	models:pull-progress   {pull_id, progress}
//	models:pull-cancelled  {pull_id}
//	models:pull-error      {pull_id, error}
//	models:pull-complete   {pull_id}
//
// Within one pull, events are published in the order the underlying
// progress lines were received. No ordering holds across concurrent pulls.
package events
