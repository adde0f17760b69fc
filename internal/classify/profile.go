package classify

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bytedance/sonic"
	"gopkg.in/yaml.v3"
)

// 内置过滤配置名称。
const (
	ProfileExtended = "extended"
	ProfileBasic    = "basic"

	// DefaultProfile 是未指定时使用的配置。
	DefaultProfile = ProfileExtended
)

// Profile 描述一套行过滤与统计规则。
type Profile struct {
	// Name 是配置名称，在 Registry 内唯一。
	Name string `json:"name" yaml:"name"`
	// ExcludedExtensions 是静态资源后缀（不含点号），命中的行不参与匹配。
	ExcludedExtensions []string `json:"excluded_extensions" yaml:"excluded_extensions"`
	// Decode 为 true 时先做 URL 解码再过滤和匹配。
	Decode bool `json:"decode" yaml:"decode"`
	// ThresholdPerDay 是地址排名的日均阈值，0 表示不过滤。
	ThresholdPerDay int64 `json:"threshold_per_day" yaml:"threshold_per_day"`
}

// Validate 检查配置是否可以编译成 Classifier。
func (p Profile) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("profile name is empty")
	}
	if p.ThresholdPerDay < 0 {
		return fmt.Errorf("profile %s: threshold_per_day must not be negative", p.Name)
	}
	for _, ext := range p.ExcludedExtensions {
		if normalizeExtension(ext) == "" {
			return fmt.Errorf("profile %s: empty excluded extension", p.Name)
		}
	}
	return nil
}

// Registry 管理过滤配置，按名称查找。
type Registry struct {
	profiles map[string]Profile
}

// NewRegistry 创建并注册内置配置。
//
// 两套内置配置对应历史上并存的两种行为：
// - extended: 排除 png/css/rss/js，先 URL 解码，日均阈值 10
// - basic: 只排除 png/css，不解码，不设阈值
func NewRegistry() *Registry {
	registry := &Registry{profiles: make(map[string]Profile)}

	registry.profiles[ProfileExtended] = Profile{
		Name:               ProfileExtended,
		ExcludedExtensions: []string{"png", "css", "rss", "js"},
		Decode:             true,
		ThresholdPerDay:    10,
	}
	registry.profiles[ProfileBasic] = Profile{
		Name:               ProfileBasic,
		ExcludedExtensions: []string{"png", "css"},
		Decode:             false,
		ThresholdPerDay:    0,
	}

	return registry
}

// Register 添加或覆盖一个配置。
func (r *Registry) Register(profile Profile) error {
	if err := profile.Validate(); err != nil {
		return err
	}
	r.profiles[profile.Name] = profile
	return nil
}

// Lookup 按名称查找配置。
func (r *Registry) Lookup(name string) (Profile, bool) {
	profile, ok := r.profiles[strings.TrimSpace(name)]
	return profile, ok
}

// Profiles 返回按名称排序的全部配置。
func (r *Registry) Profiles() []Profile {
	result := make([]Profile, 0, len(r.profiles))
	for _, profile := range r.profiles {
		profile.ExcludedExtensions = append([]string(nil), profile.ExcludedExtensions...)
		result = append(result, profile)
	}

	sort.Slice(result, func(i int, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result
}

// LoadFile 从 .json 或 .yaml/.yml 文件读取配置列表并注册。
// 同名配置会覆盖内置配置。
func (r *Registry) LoadFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read profile file: %w", err)
	}

	var profiles []Profile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(content, &profiles); err != nil {
			return fmt.Errorf("decode yaml profile file: %w", err)
		}
	case ".json":
		if err := sonic.Unmarshal(content, &profiles); err != nil {
			return fmt.Errorf("decode json profile file: %w", err)
		}
	default:
		return errors.New("unsupported profile file format (use .json or .yaml/.yml)")
	}

	if len(profiles) == 0 {
		return fmt.Errorf("no profiles found in %s", path)
	}

	for _, profile := range profiles {
		if err := r.Register(profile); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	return nil
}
