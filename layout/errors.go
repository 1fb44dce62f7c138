package layout

import "fmt"

// ConfigurationError 表示版式参数非法，在绘制前即返回。
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("layout: 配置项 %s 非法: %s", e.Field, e.Reason)
}

// SurfaceError 包装绘制面返回的错误，Unwrap 可取回原始错误。
type SurfaceError struct {
	Op  string // drawLine / newPage
	Err error
}

func (e *SurfaceError) Error() string {
	return fmt.Sprintf("layout: 绘制面 %s 失败: %v", e.Op, e.Err)
}

func (e *SurfaceError) Unwrap() error { return e.Err }
