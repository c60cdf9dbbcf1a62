package component_test

import (
	"testing"

	"github.com/kart-io/docquery/pkg/component"
	"github.com/kart-io/docquery/pkg/component/postgres"
	"github.com/kart-io/docquery/pkg/component/redis"
)

// 编译期检查：所有组件配置实现统一接口。
var (
	_ component.ConfigOptions = (*postgres.Options)(nil)
	_ component.ConfigOptions = (*redis.Options)(nil)
)

func TestConfigOptionsLifecycle(t *testing.T) {
	options := []component.ConfigOptions{
		postgres.NewOptions(),
		redis.NewOptions(),
	}

	for _, opt := range options {
		if err := opt.Complete(); err != nil {
			t.Fatalf("Complete() failed: %v", err)
		}
		if err := opt.Validate(); err != nil {
			t.Fatalf("Validate() failed after Complete(): %v", err)
		}
	}
}
