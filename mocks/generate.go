package mocks

//go:generate mockgen -destination=./mock_indicator.go -package=mocks github.com/rxtech-lab/argo-ta/pkg/indicator Indicator
//go:generate mockgen -destination=./mock_indicator_registry.go -package=mocks github.com/rxtech-lab/argo-ta/pkg/indicator Registry
//go:generate mockgen -destination=./mock_criterion.go -package=mocks github.com/rxtech-lab/argo-ta/pkg/criteria AnalysisCriterion
