package utils

// ValidateLuhn проверяет номер по алгоритму Луна.
func ValidateLuhn(number string) bool {
	if number == "" {
		return false
	}
	return luhnSum(number, false)%10 == 0
}

// LuhnCheckDigit вычисляет контрольную цифру для строки из цифр.
// Для строки с нецифровыми символами возвращает -1.
func LuhnCheckDigit(digits string) int {
	for _, r := range digits {
		if r < '0' || r > '9' {
			return -1
		}
	}
	return (10 - luhnSum(digits, true)%10) % 10
}

// luhnSum считает сумму Луна. pending означает, что контрольная цифра ещё
// не дописана и удваивать нужно, начиная с последней цифры.
func luhnSum(number string, pending bool) int {
	var sum int
	parity := len(number) % 2
	if pending {
		parity = (len(number) + 1) % 2
	}
	for i, r := range number {
		if r < '0' || r > '9' {
			return 1
		}
		digit := int(r - '0')
		if i%2 == parity {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}
		sum += digit
	}
	return sum
}
