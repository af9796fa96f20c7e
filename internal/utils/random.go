package utils

import "math/rand"

// GenerateRandomPhone 生成一个随机的大陆手机号，仅用于填充测试数据
func GenerateRandomPhone() string {
	prefixes := []string{"130", "131", "135", "137", "138", "139", "150", "151", "158", "159", "186", "188"}

	phone := prefixes[rand.Intn(len(prefixes))]
	for i := 0; i < 8; i++ {
		phone += string(rune('0' + rand.Intn(10)))
	}

	return phone
}
