// Package screen implements the project creation screens. A Screen owns one
// isolated form session bound through a single binding family, runs the
// submit pipeline against a project.Submitter and reports the outcome to a
// Notifier.
//
// Screens move through Idle, Submitting and then Success or Failure before
// settling back to Idle:
//
//	s, _ := screen.New(screen.VariantAccessor, project.NewHandler(), notifier)
//	_ = s.Form().Change("name", "Launch")
//	err := s.Submit(ctx)
package screen
