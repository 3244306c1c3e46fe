package future

import "context"

// Group is a set of concurrently issued futures treated as one join point.
type Group []*Future

// Wait blocks until every member completes or ctx expires. Results are
// returned per member, in group order. When one or more members failed the
// first failure (in group order) is returned after all members completed.
func (g Group) Wait(ctx context.Context) ([][]interface{}, error) {
	results := make([][]interface{}, len(g))
	errs := make([]error, len(g))
	for i, f := range g {
		results[i], errs[i] = f.Wait(ctx)
		if errs[i] != nil && ctx.Err() != nil {
			return results, errs[i]
		}
	}
	for _, err := range errs {
		if err != nil {
			return results, err
		}
	}
	return results, nil
}
