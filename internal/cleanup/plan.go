package cleanup

import (
	"sort"
	"time"

	pagesApi "github.com/alex-galey/pages-janitor/internal/pages-api"
)

// Plan splits a listing into the deployment to keep and the ones to delete.
type Plan struct {
	Retain     *pagesApi.Deployment
	Candidates []pagesApi.Deployment
}

func (p Plan) IsEmpty() bool {
	return p.Retain == nil
}

// PlanCleanup orders deployments newest first, keeps the newest and marks
// every other one for deletion in that order. The input is not modified.
func PlanCleanup(deployments []pagesApi.Deployment) (Plan, error) {
	if len(deployments) == 0 {
		return Plan{}, nil
	}

	type stamped struct {
		deployment pagesApi.Deployment
		createdAt  time.Time
	}
	sorted := make([]stamped, 0, len(deployments))
	for _, d := range deployments {
		ts, err := d.CreatedAt()
		if err != nil {
			return Plan{}, err
		}
		sorted = append(sorted, stamped{deployment: d, createdAt: ts})
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].createdAt.After(sorted[j].createdAt)
	})

	retain := sorted[0].deployment
	candidates := make([]pagesApi.Deployment, 0, len(sorted)-1)
	for _, s := range sorted[1:] {
		candidates = append(candidates, s.deployment)
	}

	return Plan{Retain: &retain, Candidates: candidates}, nil
}
