// Package factory provides a small generic registry used to instantiate
// pluggable components from configuration. A component is selected by a type
// string and configured through a map of raw settings. Factories decode the
// settings into typed structs and return the concrete implementation.
//
// Example usage:
//
//	reg := factory.NewRegistry[routing.Estimator]()
//	reg.Register("dijkstra", func(conf map[string]any) (routing.Estimator, error) {
//	    var c struct{ Strict bool `json:"strict"` }
//	    if err := factory.Decode(conf, &c); err != nil {
//	        return nil, err
//	    }
//	    return routing.NewDijkstra(g), nil
//	})
//	est, err := reg.Create(factory.ModuleConfig{Type: "dijkstra"})
package factory
