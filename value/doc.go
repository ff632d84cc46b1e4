// Copyright (c) SeqFlow Authors.
// Licensed under the MIT License.

/*
Package value 提供封闭标签变体形式的动态值及其变换。

# 概述

管道中流动的记录往往是无模式的 JSON 行。本包以封闭的六种类别
（Null / Bool / Number / String / Array / Object）建模这类动态值，
避免 interface{} 带来的运行时类型分发，同时提供解析、序列化、
路径求值与结构变换。

# 核心能力

  - Parse / Encode — JSON 线格式的解析与紧凑序列化。
  - Lookup — 点号与下标路径求值（如 "user.tags[2].name"）。
  - Flatten / Merge — 嵌套值的深度展平与深度合并。
  - Reshape — 嵌套数组到矩形多维数组（Tensor）的重排。
  - LineSource — 将 JSON 行流接入 seq.Source[Value]。
*/
package value
