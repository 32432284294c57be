package translate

import "context"

// MapIsolated applies fn to every item, substituting fallback(item) whenever
// fn returns an error. Failures never abort the run: the result always has
// the same length and order as the input.
func MapIsolated[In, Out any](ctx context.Context, items []In, fn func(context.Context, In) (Out, error), fallback func(In) Out) []Out {
	results := make([]Out, 0, len(items))
	for _, item := range items {
		out, err := fn(ctx, item)
		if err != nil {
			out = fallback(item)
		}
		results = append(results, out)
	}
	return results
}
