// Copyright (c) SeqFlow Authors.
// Licensed under the MIT License.

/*
Package testutil 提供 seqflow 测试的共享源实现与辅助函数。

# 核心能力

  - IntSource — 产生 0..n-1 的整数序列。
  - Scripted — 按脚本逐项产出，可注入每项延迟与阻塞门。
  - Failing — 在指定位置注入错误的序列。
  - Counting — 包装任意源，统计 Next / Close 调用次数。
  - TestContext — 绑定 t.Cleanup 的测试上下文。
*/
package testutil
